package database

import (
	"context"

	"github.com/taskmaster/taskflow/internal/adapters/repository"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/infrastructure/fixtures"
)

// DB groups the in-memory stores. Nothing is written to disk; Reset returns
// every store to the seed it was created with.
type DB struct {
	Projects      *repository.ProjectRepository
	Tasks         *repository.TaskRepository
	Shares        *repository.ShareRepository
	Notifications *repository.NotificationRepository
	Settings      *repository.SettingsRepository
}

// New creates the stores and seeds them
func New(seed *fixtures.Seed, cfg config.ShareConfig, opts repository.Options) *DB {
	if seed == nil {
		seed = &fixtures.Seed{}
	}

	db := &DB{
		Projects:      repository.NewProjectRepository(opts),
		Tasks:         repository.NewTaskRepository(opts),
		Shares:        repository.NewShareRepository(cfg.BaseURL, opts),
		Notifications: repository.NewNotificationRepository(opts),
		Settings:      repository.NewSettingsRepository(seed.SettingsOrDefault()),
	}

	db.Projects.Init(seed.Projects)
	db.Tasks.Init(seed.Tasks)
	db.Shares.Init(seed.ShareLinks)
	db.Notifications.Init(seed.Notifications)

	return db
}

// Reset restores every store to its seed
func (db *DB) Reset() {
	db.Projects.Reset()
	db.Tasks.Reset()
	db.Shares.Reset()
	db.Notifications.Reset()
	db.Settings.Reset()
}

// Stats returns the number of records per store
func (db *DB) Stats(ctx context.Context) map[string]interface{} {
	unread, _ := db.Notifications.CountUnread(ctx)
	return map[string]interface{}{
		"projects":             db.Projects.Len(),
		"tasks":                db.Tasks.Len(),
		"share_links":          db.Shares.Len(),
		"notifications":        db.Notifications.Len(),
		"unread_notifications": unread,
	}
}
