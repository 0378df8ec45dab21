package views

import (
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// ShareLinkView is a share link as listed on the project page.
type ShareLinkView struct {
	Link       *entities.ShareLink
	Project    ProjectRef
	Permission entities.Display
	Expired    bool
	// Copyable is false for expired links; they can still be deleted.
	Copyable bool
}

func NewShareLinkView(link *entities.ShareLink, projects *ProjectDirectory, now time.Time) ShareLinkView {
	perm, _ := link.Permission.Display()
	expired := link.IsExpired(now)
	return ShareLinkView{
		Link:       link,
		Project:    projects.Lookup(link.ProjectID),
		Permission: perm,
		Expired:    expired,
		Copyable:   !expired,
	}
}

// Badges returns the badges shown next to the link.
func (v ShareLinkView) Badges() []entities.Display {
	badges := []entities.Display{v.Permission}
	if v.Expired {
		badges = append(badges, entities.ExpiredDisplay)
	}
	return badges
}

// Target names the page a notification opens.
type Target struct {
	View string
	ID   string
}

const (
	ViewTasks    = "tasks"
	ViewProjects = "projects"
)

// NotificationTarget returns where clicking n navigates: its task first,
// then its project. ok is false when n references neither.
func NotificationTarget(n *entities.Notification) (Target, bool) {
	switch {
	case n.TaskID != "":
		return Target{View: ViewTasks, ID: n.TaskID}, true
	case n.ProjectID != "":
		return Target{View: ViewProjects, ID: n.ProjectID}, true
	default:
		return Target{}, false
	}
}

// TaskRow is a task as shown in the all-tasks list.
type TaskRow struct {
	Task     *entities.Task
	Project  ProjectRef
	Status   entities.Display
	Priority entities.Display
	Overdue  bool
}

// TaskRows decorates tasks for listing. A task is overdue when it is not done
// and its due day is before today.
func TaskRows(tasks []*entities.Task, projects *ProjectDirectory, today time.Time) []TaskRow {
	y, m, d := today.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		status, _ := t.Status.Display()
		priority, _ := t.Priority.Display()
		row := TaskRow{Task: t, Project: projects.Lookup(t.ProjectID), Status: status, Priority: priority}
		if due, ok := t.Due(); ok && !t.IsDone() {
			dy, dm, dd := due.Date()
			row.Overdue = time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(startOfToday)
		}
		rows = append(rows, row)
	}
	return rows
}
