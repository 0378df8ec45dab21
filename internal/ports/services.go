package ports

import (
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// Request types. Enumerated fields left empty on create fall back to a
// default; any other unknown value is rejected by the services.

// Project related types
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateProjectRequest struct {
	Name        *string                        `json:"name" validate:"omitempty,max=200"`
	Description *string                        `json:"description" validate:"omitempty,max=1000"`
	Color       *string                        `json:"color" validate:"omitempty,hexcolor"`
	SharedWith  []string                       `json:"sharedWith" validate:"omitempty,dive,email"`
	Permissions map[string]entities.Permission `json:"permissions"`
}

// Apply shallow-merges the request onto p.
func (r UpdateProjectRequest) Apply(p *entities.Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Color != nil {
		p.Color = *r.Color
	}
	if r.SharedWith != nil {
		p.SharedWith = make([]string, len(r.SharedWith))
		copy(p.SharedWith, r.SharedWith)
	}
	if r.Permissions != nil {
		p.Permissions = make(map[string]entities.Permission, len(r.Permissions))
		for k, v := range r.Permissions {
			p.Permissions[k] = v
		}
	}
}

// Task related types
type CreateTaskRequest struct {
	Title       string              `json:"title" validate:"required,max=500"`
	Description string              `json:"description" validate:"max=2000"`
	Status      entities.TaskStatus `json:"status"`
	Priority    entities.Priority   `json:"priority"`
	DueDate     string              `json:"dueDate" validate:"omitempty,duedate"`
	AssignedTo  string              `json:"assignedTo" validate:"omitempty,email"`
	ProjectID   string              `json:"projectId" validate:"required"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Status      *entities.TaskStatus `json:"status"`
	Priority    *entities.Priority   `json:"priority"`
	DueDate     *string              `json:"dueDate" validate:"omitempty,duedate"`
	AssignedTo  *string              `json:"assignedTo" validate:"omitempty,email"`
	ProjectID   *string              `json:"projectId"`
}

// Apply shallow-merges the request onto t.
func (r UpdateTaskRequest) Apply(t *entities.Task) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	if r.Priority != nil {
		t.Priority = *r.Priority
	}
	if r.DueDate != nil {
		t.DueDate = *r.DueDate
	}
	if r.AssignedTo != nil {
		t.AssignedTo = *r.AssignedTo
	}
	if r.ProjectID != nil {
		t.ProjectID = *r.ProjectID
	}
}

// Share link related types
type CreateShareLinkRequest struct {
	ProjectID  string              `json:"projectId" validate:"required"`
	Permission entities.Permission `json:"permission"`
	ExpiresAt  *time.Time          `json:"expiresAt"`
}

type UpdateShareLinkRequest struct {
	Permission  *entities.Permission `json:"permission"`
	ExpiresAt   *time.Time           `json:"expiresAt"`
	ClearExpiry bool                 `json:"clearExpiry"`
}

// Apply shallow-merges the request onto s. The link itself is never touched.
func (r UpdateShareLinkRequest) Apply(s *entities.ShareLink) {
	if r.Permission != nil {
		s.Permission = *r.Permission
	}
	switch {
	case r.ClearExpiry:
		s.ExpiresAt = nil
	case r.ExpiresAt != nil:
		at := *r.ExpiresAt
		s.ExpiresAt = &at
	}
}

// Notification related types
type CreateNotificationRequest struct {
	Type      entities.NotificationType `json:"type"`
	Message   string                    `json:"message" validate:"required,max=500"`
	Details   string                    `json:"details" validate:"max=2000"`
	TaskID    string                    `json:"taskId"`
	ProjectID string                    `json:"projectId"`
}

// Settings related types
type UpdateSettingsRequest struct {
	TaskView           *entities.TaskView `json:"taskView"`
	Notifications      *bool              `json:"notifications"`
	Theme              *entities.Theme    `json:"theme"`
	EmailNotifications *bool              `json:"emailNotifications"`
	PushNotifications  *bool              `json:"pushNotifications"`
	DataSharing        *bool              `json:"dataSharing"`
	Analytics          *bool              `json:"analytics"`
}

// Apply merges the request onto s.
func (r UpdateSettingsRequest) Apply(s *entities.Settings) {
	if r.TaskView != nil {
		s.TaskView = *r.TaskView
	}
	if r.Notifications != nil {
		s.Notifications = *r.Notifications
	}
	if r.Theme != nil {
		s.Theme = *r.Theme
	}
	if r.EmailNotifications != nil {
		s.EmailNotifications = *r.EmailNotifications
	}
	if r.PushNotifications != nil {
		s.PushNotifications = *r.PushNotifications
	}
	if r.DataSharing != nil {
		s.DataSharing = *r.DataSharing
	}
	if r.Analytics != nil {
		s.Analytics = *r.Analytics
	}
}
