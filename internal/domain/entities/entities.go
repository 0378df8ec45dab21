package entities

import (
	"strings"
	"time"
)

// Enums and types
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

type NotificationType string

const (
	NotificationTypeMention    NotificationType = "mention"
	NotificationTypeDueDate    NotificationType = "due_date"
	NotificationTypeAssignment NotificationType = "assignment"
	NotificationTypeOther      NotificationType = "other"
)

// DueDateLayout is the calendar form used when a due date is picked from a day cell.
const DueDateLayout = "2006-01-02"

// DefaultProjectColor is the first entry of ProjectPalette.
const DefaultProjectColor = "#5B47E0"

// ProjectPalette lists the colours offered when creating a project.
var ProjectPalette = []string{
	"#5B47E0", "#FF6B6B", "#4CAF50", "#FF9800", "#2196F3",
	"#9C27B0", "#F44336", "#00BCD4", "#8BC34A", "#FF5722",
}

// Project represents a project on the dashboard
type Project struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	Color       string                `json:"color" yaml:"color"`
	CreatedAt   time.Time             `json:"createdAt" yaml:"createdAt"`
	SharedWith  []string              `json:"sharedWith" yaml:"sharedWith"`
	Permissions map[string]Permission `json:"permissions" yaml:"permissions"`
}

// Task represents a task inside a project. ProjectID is a weak reference and
// may point at a project that no longer exists.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Status      TaskStatus `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     string     `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty"`
	ProjectID   string     `json:"projectId" yaml:"projectId"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// ShareLink represents a generated link granting access to a project.
// Link is fixed at creation.
type ShareLink struct {
	ID         string     `json:"id" yaml:"id"`
	ProjectID  string     `json:"projectId" yaml:"projectId"`
	Permission Permission `json:"permission" yaml:"permission"`
	Link       string     `json:"shareLink" yaml:"shareLink"`
	ExpiresAt  *time.Time `json:"expiresAt" yaml:"expiresAt,omitempty"`
}

// Notification represents an in-app notification.
type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	Type      NotificationType `json:"type" yaml:"type"`
	Message   string           `json:"message" yaml:"message"`
	Details   string           `json:"details,omitempty" yaml:"details,omitempty"`
	TaskID    string           `json:"taskId,omitempty" yaml:"taskId,omitempty"`
	ProjectID string           `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Read      bool             `json:"read" yaml:"read"`
	CreatedAt time.Time        `json:"createdAt" yaml:"createdAt"`
	ReadAt    *time.Time       `json:"readAt" yaml:"readAt,omitempty"`
}

// Identity and copy helpers used by the in-memory stores

func (p Project) EntityID() string { return p.ID }

func (p Project) Clone() Project {
	c := p
	if p.SharedWith != nil {
		c.SharedWith = make([]string, len(p.SharedWith))
		copy(c.SharedWith, p.SharedWith)
	}
	if p.Permissions != nil {
		c.Permissions = make(map[string]Permission, len(p.Permissions))
		for k, v := range p.Permissions {
			c.Permissions[k] = v
		}
	}
	return c
}

func (t Task) EntityID() string { return t.ID }

func (t Task) Clone() Task { return t }

func (s ShareLink) EntityID() string { return s.ID }

func (s ShareLink) Clone() ShareLink {
	c := s
	if s.ExpiresAt != nil {
		at := *s.ExpiresAt
		c.ExpiresAt = &at
	}
	return c
}

func (n Notification) EntityID() string { return n.ID }

func (n Notification) Clone() Notification {
	c := n
	if n.ReadAt != nil {
		at := *n.ReadAt
		c.ReadAt = &at
	}
	return c
}

// Business logic methods for Task

// Due parses DueDate. Both the calendar form and RFC 3339 timestamps are accepted.
func (t *Task) Due() (time.Time, bool) {
	return ParseDueDate(t.DueDate)
}

// IsDueOn reports whether the task is due on the same calendar day as date.
func (t *Task) IsDueOn(date time.Time) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	y1, m1, d1 := due.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// ParseDueDate returns false for empty or unparseable values.
func ParseDueDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DueDateLayout, value); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, value); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// Business logic methods for ShareLink

func (s *ShareLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// CopyableLink returns the link for copying; expired links cannot be used.
func (s *ShareLink) CopyableLink(now time.Time) (string, error) {
	if s.IsExpired(now) {
		return "", &LinkExpiredError{ID: s.ID, ExpiredAt: *s.ExpiresAt}
	}
	return s.Link, nil
}

// Business logic methods for Notification

// MarkRead flips the notification to read. ReadAt is only stamped on the first call.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Read {
		return false
	}
	n.Read = true
	n.ReadAt = &now
	return true
}

// IsConsistent reports whether ReadAt is set exactly when Read is true.
func (n *Notification) IsConsistent() bool {
	return n.Read == (n.ReadAt != nil)
}

// Utility methods

// TaskStatuses returns the statuses in kanban column order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Permission) IsValid() bool {
	switch p {
	case PermissionView, PermissionEdit:
		return true
	default:
		return false
	}
}

func (nt NotificationType) IsValid() bool {
	switch nt {
	case NotificationTypeMention, NotificationTypeDueDate, NotificationTypeAssignment, NotificationTypeOther:
		return true
	default:
		return false
	}
}

// ParseTaskStatus validates a raw status value.
func ParseTaskStatus(value string) (TaskStatus, error) {
	ts := TaskStatus(strings.TrimSpace(value))
	if !ts.IsValid() {
		return "", &InvalidArgumentError{Field: "status", Value: value, Reason: "must be one of todo, in-progress, done"}
	}
	return ts, nil
}

// ParsePriority validates a raw priority value.
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.TrimSpace(value))
	if !p.IsValid() {
		return "", &InvalidArgumentError{Field: "priority", Value: value, Reason: "must be one of low, medium, high"}
	}
	return p, nil
}
