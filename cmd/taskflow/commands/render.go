package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster/taskflow/internal/application/kanban"
	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
)

const columnWidth = 34

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(entities.DefaultProjectColor))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336")).Bold(true)
	todayStyle   = lipgloss.NewStyle().Reverse(true)
	columnStyle  = lipgloss.NewStyle().
			Width(columnWidth).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#64748b"))
)

func badge(d entities.Display) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Bold(true).Render("[" + d.Label + "]")
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func renderProjects(w io.Writer, projects []*entities.Project, taskCounts map[string]int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Projects (%d)", len(projects))))
	for _, p := range projects {
		fmt.Fprintf(w, "%s %s  %s\n", swatch(p.Color), p.Name, mutedStyle.Render(fmt.Sprintf("#%s · %d tasks", p.ID, taskCounts[p.ID])))
		if p.Description != "" {
			fmt.Fprintf(w, "    %s\n", p.Description)
		}
		if len(p.SharedWith) > 0 {
			fmt.Fprintf(w, "    %s\n", mutedStyle.Render("shared with "+strings.Join(p.SharedWith, ", ")))
		}
	}
}

func renderPalette(w io.Writer, palette []string, def string) {
	fmt.Fprintln(w, titleStyle.Render("Project colours"))
	for _, c := range palette {
		line := swatch(c) + " " + c
		if c == def {
			line += " " + mutedStyle.Render("(default)")
		}
		fmt.Fprintln(w, line)
	}
}

func renderTaskRows(w io.Writer, rows []views.TaskRow) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(rows))))
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tasks match the current filters"))
		return
	}
	for _, row := range rows {
		due := ""
		if row.Task.DueDate != "" {
			due = "due " + row.Task.DueDate
			if row.Overdue {
				due = overdueStyle.Render(due + " (overdue)")
			}
		}
		fmt.Fprintf(w, "#%-4s %s %s %s\n", row.Task.ID, row.Task.Title, badge(row.Status), badge(row.Priority))
		meta := []string{swatch(row.Project.Color) + " " + row.Project.Name}
		if row.Task.AssignedTo != "" {
			meta = append(meta, row.Task.AssignedTo)
		}
		if due != "" {
			meta = append(meta, due)
		}
		fmt.Fprintf(w, "      %s\n", strings.Join(meta, " · "))
	}
}

func renderBoard(w io.Writer, project views.ProjectRef, columns []kanban.Column) {
	fmt.Fprintln(w, titleStyle.Render(project.Name))

	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		header := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Color)).Bold(true).
			Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks)))
		lines := []string{header, ""}
		if len(col.Tasks) == 0 {
			lines = append(lines, mutedStyle.Render(col.EmptyHint))
		}
		for _, t := range col.Tasks {
			p, _ := t.Priority.Display()
			lines = append(lines, fmt.Sprintf("#%s %s", t.ID, t.Title), badge(p))
		}
		rendered = append(rendered, columnStyle.Render(strings.Join(lines, "\n")))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func renderCalendar(w io.Writer, grid views.CalendarMonth, projects *views.ProjectDirectory) {
	title := time.Date(grid.Year, grid.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")

	var due []views.CalendarDay
	for _, week := range grid.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cell := fmt.Sprintf("%3d", day.Date.Day())
			if len(day.Tasks) > 0 {
				cell += "*"
			} else {
				cell += " "
			}
			switch {
			case day.IsToday:
				cell = todayStyle.Render(cell)
			case !day.InMonth:
				cell = mutedStyle.Render(cell)
			}
			cells = append(cells, cell)
			if day.InMonth && len(day.Tasks) > 0 {
				due = append(due, day)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}

	if len(due) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No tasks due this month"))
		return
	}
	fmt.Fprintln(w)
	for _, day := range due {
		fmt.Fprintln(w, day.Date.Format("Mon Jan 2"))
		for _, t := range day.Tasks {
			ref := projects.Lookup(t.ProjectID)
			fmt.Fprintf(w, "  #%s %s %s\n", t.ID, t.Title, mutedStyle.Render(ref.Name))
		}
	}
}

func renderShareLinks(w io.Writer, links []views.ShareLinkView) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Share links (%d)", len(links))))
	if len(links) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No share links yet"))
		return
	}
	for _, v := range links {
		badges := make([]string, 0, 2)
		for _, b := range v.Badges() {
			badges = append(badges, badge(b))
		}
		fmt.Fprintf(w, "#%-4s %s %s\n", v.Link.ID, v.Link.Link, strings.Join(badges, " "))
		if v.Link.ExpiresAt != nil {
			fmt.Fprintf(w, "      %s\n", mutedStyle.Render("expires "+v.Link.ExpiresAt.Format(time.RFC3339)))
		}
	}
}

func renderNotifications(w io.Writer, list []*entities.Notification, unread int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Notifications (%d unread)", unread)))
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("You're all caught up"))
		return
	}
	for _, n := range list {
		d, _ := n.Type.Display()
		marker := " "
		if !n.Read {
			marker = "•"
		}
		fmt.Fprintf(w, "%s #%-4s %s %s\n", marker, n.ID, badge(d), n.Message)
		if n.Details != "" {
			fmt.Fprintf(w, "        %s\n", n.Details)
		}
		line := n.CreatedAt.Format("2006-01-02 15:04")
		if target, ok := views.NotificationTarget(n); ok {
			line += " → " + target.View + "/" + target.ID
		}
		fmt.Fprintf(w, "        %s\n", mutedStyle.Render(line))
	}
}

func renderSettings(w io.Writer, s entities.Settings) {
	fmt.Fprintln(w, titleStyle.Render("Settings"))
	rows := []struct {
		name  string
		value interface{}
	}{
		{"taskView", s.TaskView},
		{"theme", s.Theme},
		{"notifications", s.Notifications},
		{"emailNotifications", s.EmailNotifications},
		{"pushNotifications", s.PushNotifications},
		{"dataSharing", s.DataSharing},
		{"analytics", s.Analytics},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-20s %v\n", r.name, r.value)
	}
}
