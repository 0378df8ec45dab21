// Package views holds the pure read-side functions the presentation layer
// renders from: filtering, kanban grouping, calendar layout and lookups.
package views

import (
	"strings"
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// All disables a filter field.
const All = "all"

// TaskFilters selects tasks by status, project and priority. Each field is
// either All or an exact value.
type TaskFilters struct {
	Status   string `json:"status"`
	Project  string `json:"project"`
	Priority string `json:"priority"`
}

// NoFilters matches every task.
func NoFilters() TaskFilters {
	return TaskFilters{Status: All, Project: All, Priority: All}
}

// ParseTaskFilters normalises raw filter values. Empty means All; status and
// priority must otherwise name a known value.
func ParseTaskFilters(status, project, priority string) (TaskFilters, error) {
	f := NoFilters()

	if s := strings.TrimSpace(status); s != "" && s != All {
		ts, err := entities.ParseTaskStatus(s)
		if err != nil {
			return TaskFilters{}, err
		}
		f.Status = string(ts)
	}
	if p := strings.TrimSpace(project); p != "" {
		f.Project = p
	}
	if p := strings.TrimSpace(priority); p != "" && p != All {
		pr, err := entities.ParsePriority(p)
		if err != nil {
			return TaskFilters{}, err
		}
		f.Priority = string(pr)
	}
	return f, nil
}

func matches(field, value string) bool {
	return field == All || field == value
}

// Match reports whether t passes every field that is not All.
func (f TaskFilters) Match(t *entities.Task) bool {
	return matches(f.Status, string(t.Status)) &&
		matches(f.Project, t.ProjectID) &&
		matches(f.Priority, string(t.Priority))
}

// FilterTasks returns the tasks passing f, in input order.
func FilterTasks(tasks []*entities.Task, f TaskFilters) []*entities.Task {
	out := make([]*entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByStatus partitions tasks into the three kanban buckets, keeping
// relative order. Every bucket is present even when empty. A task with an
// unknown status is reported through the error instead of being dropped;
// the valid tasks are still grouped.
func GroupByStatus(tasks []*entities.Task) (map[entities.TaskStatus][]*entities.Task, error) {
	groups := make(map[entities.TaskStatus][]*entities.Task, 3)
	for _, ts := range entities.TaskStatuses() {
		groups[ts] = []*entities.Task{}
	}

	var unknown []string
	for _, t := range tasks {
		if _, ok := groups[t.Status]; !ok {
			unknown = append(unknown, t.ID)
			continue
		}
		groups[t.Status] = append(groups[t.Status], t)
	}

	if len(unknown) > 0 {
		return groups, &entities.InvalidArgumentError{
			Field:  "status",
			Value:  strings.Join(unknown, ","),
			Reason: "tasks have no kanban column",
		}
	}
	return groups, nil
}

// TasksForDate returns the tasks due on the calendar day of date. Tasks with
// a missing or unparseable due date are skipped.
func TasksForDate(tasks []*entities.Task, date time.Time) []*entities.Task {
	out := make([]*entities.Task, 0)
	for _, t := range tasks {
		if t.IsDueOn(date) {
			out = append(out, t)
		}
	}
	return out
}
