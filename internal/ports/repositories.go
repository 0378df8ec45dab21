package ports

import (
	"context"
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// Every repository hands out copies: mutating a returned entity never
// changes the stored one. Update applies fn to a copy under the store lock
// and commits it atomically.

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Init(seed []entities.Project)
	Reset()
	List(ctx context.Context) ([]*entities.Project, error)
	GetByID(ctx context.Context, id string) (*entities.Project, error)
	Create(ctx context.Context, project entities.Project) (*entities.Project, error)
	Update(ctx context.Context, id string, fn func(*entities.Project)) (*entities.Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Init(seed []entities.Task)
	Reset()
	List(ctx context.Context) ([]*entities.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*entities.Task, error)
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	Create(ctx context.Context, task entities.Task) (*entities.Task, error)
	Update(ctx context.Context, id string, fn func(*entities.Task)) (*entities.Task, error)
	Delete(ctx context.Context, id string) error
}

// ShareRepository defines the interface for share link data operations
type ShareRepository interface {
	Init(seed []entities.ShareLink)
	Reset()
	List(ctx context.Context) ([]*entities.ShareLink, error)
	ListByProject(ctx context.Context, projectID string) ([]*entities.ShareLink, error)
	GetByID(ctx context.Context, id string) (*entities.ShareLink, error)
	Create(ctx context.Context, share entities.ShareLink) (*entities.ShareLink, error)
	Update(ctx context.Context, id string, fn func(*entities.ShareLink)) (*entities.ShareLink, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the interface for notification data operations.
// Lists are ordered newest first.
type NotificationRepository interface {
	Init(seed []entities.Notification)
	Reset()
	List(ctx context.Context) ([]*entities.Notification, error)
	ListByType(ctx context.Context, nt entities.NotificationType) ([]*entities.Notification, error)
	GetByID(ctx context.Context, id string) (*entities.Notification, error)
	CountUnread(ctx context.Context) (int, error)
	Create(ctx context.Context, notification entities.Notification) (*entities.Notification, error)
	MarkRead(ctx context.Context, id string, at time.Time) (*entities.Notification, error)
	MarkAllRead(ctx context.Context, at time.Time) ([]*entities.Notification, error)
	Delete(ctx context.Context, id string) (*entities.Notification, error)
	Clear(ctx context.Context) ([]*entities.Notification, error)
}

// SettingsRepository holds the single user-preferences record
type SettingsRepository interface {
	Get(ctx context.Context) (entities.Settings, error)
	Save(ctx context.Context, settings entities.Settings) error
	Reset()
}

// OperationRecorder receives the outcome of every service call
type OperationRecorder interface {
	Observe(entity, operation string, duration time.Duration, err error)
}
