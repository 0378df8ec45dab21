package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

func task(id string, status entities.TaskStatus, priority entities.Priority, projectID string) *entities.Task {
	return &entities.Task{ID: id, Title: "Task " + id, Status: status, Priority: priority, ProjectID: projectID}
}

func ids(tasks []*entities.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func mixedTasks() []*entities.Task {
	return []*entities.Task{
		task("1", entities.TaskStatusDone, entities.PriorityLow, "p1"),
		task("2", entities.TaskStatusTodo, entities.PriorityHigh, "p1"),
		task("3", entities.TaskStatusDone, entities.PriorityHigh, "p2"),
		task("4", entities.TaskStatusInProgress, entities.PriorityMedium, "p2"),
		task("5", entities.TaskStatusDone, entities.PriorityMedium, "ghost"),
	}
}

func TestFilterTasks_SingleTask(t *testing.T) {
	for _, status := range entities.TaskStatuses() {
		tk := task("t", status, entities.PriorityMedium, "p1")

		f := TaskFilters{Status: string(status), Project: All, Priority: All}
		assert.Equal(t, []*entities.Task{tk}, FilterTasks([]*entities.Task{tk}, f))

		for _, other := range entities.TaskStatuses() {
			if other == status {
				continue
			}
			f.Status = string(other)
			assert.Empty(t, FilterTasks([]*entities.Task{tk}, f), "status %s filtered by %s", status, other)
		}
	}
}

func TestFilterTasks(t *testing.T) {
	tasks := mixedTasks()

	tests := []struct {
		name    string
		filters TaskFilters
		want    []string
	}{
		{"no filters", NoFilters(), []string{"1", "2", "3", "4", "5"}},
		{"done only keeps order", TaskFilters{Status: "done", Project: All, Priority: All}, []string{"1", "3", "5"}},
		{"project", TaskFilters{Status: All, Project: "p2", Priority: All}, []string{"3", "4"}},
		{"priority", TaskFilters{Status: All, Project: All, Priority: "high"}, []string{"2", "3"}},
		{"combined", TaskFilters{Status: "done", Project: "p2", Priority: "high"}, []string{"3"}},
		{"nothing matches", TaskFilters{Status: "todo", Project: "p2", Priority: All}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTasks(tasks, tt.filters)))
		})
	}
}

func TestParseTaskFilters(t *testing.T) {
	f, err := ParseTaskFilters("", "", "")
	require.NoError(t, err)
	assert.Equal(t, NoFilters(), f)

	f, err = ParseTaskFilters("in-progress", "p1", "all")
	require.NoError(t, err)
	assert.Equal(t, TaskFilters{Status: "in-progress", Project: "p1", Priority: All}, f)

	_, err = ParseTaskFilters("blocked", "", "")
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = ParseTaskFilters("", "", "urgent")
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestGroupByStatus(t *testing.T) {
	tasks := mixedTasks()

	groups, err := GroupByStatus(tasks)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	total := 0
	for _, bucket := range groups {
		total += len(bucket)
	}
	assert.Equal(t, len(tasks), total)

	assert.Equal(t, []string{"2"}, ids(groups[entities.TaskStatusTodo]))
	assert.Equal(t, []string{"4"}, ids(groups[entities.TaskStatusInProgress]))
	assert.Equal(t, []string{"1", "3", "5"}, ids(groups[entities.TaskStatusDone]))
}

func TestGroupByStatus_EmptyAndUnknown(t *testing.T) {
	groups, err := GroupByStatus(nil)
	require.NoError(t, err)
	for _, ts := range entities.TaskStatuses() {
		assert.NotNil(t, groups[ts])
		assert.Empty(t, groups[ts])
	}

	tasks := append(mixedTasks(), task("x", "blocked", entities.PriorityLow, "p1"))
	groups, err = GroupByStatus(tasks)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "x")
	assert.Len(t, groups[entities.TaskStatusDone], 3)
}

func TestTasksForDate(t *testing.T) {
	tasks := []*entities.Task{
		{ID: "a", DueDate: "2024-06-10"},
		{ID: "b", DueDate: "2024-06-11"},
		{ID: "c"},
		{ID: "d", DueDate: "soon"},
		{ID: "e", DueDate: "2024-06-10T17:30:00Z"},
	}

	day := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"a", "e"}, ids(TasksForDate(tasks, day)))
	assert.Empty(t, TasksForDate(tasks, day.AddDate(0, 1, 0)))
}

func TestProjectDirectory(t *testing.T) {
	dir := NewProjectDirectory([]*entities.Project{
		{ID: "p1", Name: "Launch", Color: "#5B47E0"},
		{ID: "p2", Name: "Ops"},
	})

	ref := dir.Lookup("p1")
	assert.True(t, ref.Known)
	assert.Equal(t, "Launch", ref.Name)
	assert.Equal(t, "#5B47E0", ref.Color)

	assert.Equal(t, UnknownProjectColor, dir.Lookup("p2").Color)

	missing := dir.Lookup("deleted")
	assert.False(t, missing.Known)
	assert.Equal(t, "Unknown Project", missing.Name)
	assert.Equal(t, "#64748b", missing.Color)
	assert.Equal(t, "Unknown Project", dir.Name(""))
	assert.Equal(t, 2, dir.Len())
}

func TestMonthGrid(t *testing.T) {
	// June 2024 starts on a Saturday and ends on a Sunday.
	month := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	tasks := []*entities.Task{{ID: "a", DueDate: "2024-06-03"}, {ID: "b", DueDate: "2024-07-01"}}

	grid := MonthGrid(month, tasks, today)
	assert.Equal(t, time.June, grid.Month)
	require.Len(t, grid.Weeks, 6)

	first := grid.Weeks[0][0]
	assert.Equal(t, time.Date(2024, time.May, 26, 0, 0, 0, 0, time.UTC), first.Date)
	assert.False(t, first.InMonth)

	lastWeek := grid.Weeks[len(grid.Weeks)-1]
	assert.Equal(t, time.Date(2024, time.July, 6, 0, 0, 0, 0, time.UTC), lastWeek[6].Date)

	for _, week := range grid.Weeks {
		require.Len(t, week, 7)
		assert.Equal(t, time.Sunday, week[0].Date.Weekday())
	}

	d, ok := grid.Day(today)
	require.True(t, ok)
	assert.True(t, d.IsToday)
	assert.True(t, d.InMonth)
	assert.Equal(t, []string{"a"}, ids(d.Tasks))

	july1, ok := grid.Day(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.False(t, july1.InMonth)
	assert.Equal(t, []string{"b"}, ids(july1.Tasks))

	_, ok = grid.Day(time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestQuickAddDueDate(t *testing.T) {
	day := time.Date(2024, time.February, 29, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", QuickAddDueDate(day))

	m, err := ParseMonth("2024-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.February, m.Month())
}

func TestShareLinkView(t *testing.T) {
	now := time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	dir := NewProjectDirectory(nil)

	expired := NewShareLinkView(&entities.ShareLink{ID: "s1", ProjectID: "p1", Permission: entities.PermissionEdit, ExpiresAt: &past}, dir, now)
	assert.True(t, expired.Expired)
	assert.False(t, expired.Copyable)
	assert.Equal(t, "Can Edit", expired.Permission.Label)
	assert.Equal(t, UnknownProjectName, expired.Project.Name)
	assert.Equal(t, []entities.Display{expired.Permission, entities.ExpiredDisplay}, expired.Badges())

	open := NewShareLinkView(&entities.ShareLink{ID: "s2", Permission: entities.PermissionView}, dir, now)
	assert.True(t, open.Copyable)
	assert.Len(t, open.Badges(), 1)
}

func TestNotificationTarget(t *testing.T) {
	tests := []struct {
		name string
		n    entities.Notification
		want Target
		ok   bool
	}{
		{"task wins", entities.Notification{TaskID: "t1", ProjectID: "p1"}, Target{View: ViewTasks, ID: "t1"}, true},
		{"project", entities.Notification{ProjectID: "p1"}, Target{View: ViewProjects, ID: "p1"}, true},
		{"nowhere", entities.Notification{}, Target{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NotificationTarget(&tt.n)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskRows(t *testing.T) {
	today := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	dir := NewProjectDirectory([]*entities.Project{{ID: "p1", Name: "Launch", Color: "#FF6B6B"}})
	tasks := []*entities.Task{
		{ID: "late", Status: entities.TaskStatusTodo, Priority: entities.PriorityHigh, ProjectID: "p1", DueDate: "2024-06-09"},
		{ID: "today", Status: entities.TaskStatusTodo, Priority: entities.PriorityLow, ProjectID: "gone", DueDate: "2024-06-10"},
		{ID: "done", Status: entities.TaskStatusDone, Priority: entities.PriorityLow, ProjectID: "p1", DueDate: "2024-01-01"},
	}

	rows := TaskRows(tasks, dir, today)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Overdue)
	assert.Equal(t, "Launch", rows[0].Project.Name)
	assert.Equal(t, "High", rows[0].Priority.Label)
	assert.False(t, rows[1].Overdue)
	assert.Equal(t, UnknownProjectName, rows[1].Project.Name)
	assert.False(t, rows[2].Overdue)
	assert.Equal(t, "Done", rows[2].Status.Label)
}
