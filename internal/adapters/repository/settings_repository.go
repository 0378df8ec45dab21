package repository

import (
	"context"
	"sync"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// SettingsRepository keeps the preferences record in memory
type SettingsRepository struct {
	mu       sync.RWMutex
	initial  entities.Settings
	settings entities.Settings
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository starts from initial; Reset returns to it.
func NewSettingsRepository(initial entities.Settings) *SettingsRepository {
	return &SettingsRepository{initial: initial, settings: initial}
}

func (r *SettingsRepository) Get(ctx context.Context) (entities.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings entities.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

func (r *SettingsRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = r.initial
}
