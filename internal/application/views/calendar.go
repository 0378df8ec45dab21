package views

import (
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	Tasks   []*entities.Task
}

// CalendarMonth is a month laid out in Sunday-first weeks.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Weeks [][]CalendarDay
}

// MonthGrid lays out the month containing month, from the Sunday on or before
// the 1st to the Saturday on or after the last day. Each day carries the
// tasks due on it.
func MonthGrid(month time.Time, tasks []*entities.Task, today time.Time) CalendarMonth {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	grid := CalendarMonth{Year: first.Year(), Month: first.Month()}
	var week []CalendarDay
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		week = append(week, CalendarDay{
			Date:    day,
			InMonth: day.Month() == first.Month(),
			IsToday: sameDay(day, today),
			Tasks:   TasksForDate(tasks, day),
		})
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	return grid
}

// Day returns the cell for date, if the grid contains it.
func (m CalendarMonth) Day(date time.Time) (CalendarDay, bool) {
	for _, week := range m.Weeks {
		for _, d := range week {
			if sameDay(d.Date, date) {
				return d, true
			}
		}
	}
	return CalendarDay{}, false
}

// QuickAddDueDate is the due date given to a task added from a day cell.
func QuickAddDueDate(day time.Time) string {
	return day.Format(entities.DueDateLayout)
}

// ParseMonth reads a YYYY-MM month.
func ParseMonth(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01", value, loc)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
