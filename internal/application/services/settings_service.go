package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

const entitySettings = "settings"

// SettingsService handles the user preferences
type SettingsService struct {
	mu           sync.Mutex
	settingsRepo ports.SettingsRepository
	rt           *Runtime
	logger       *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo ports.SettingsRepository, rt *Runtime) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		rt:           rt,
		logger:       rt.logger.WithComponent("settings_service"),
	}
}

func (s *SettingsService) GetSettings(ctx context.Context) (entities.Settings, error) {
	return observe(s.rt, entitySettings, "get", s.rt.latency.Get, func() (entities.Settings, error) {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return entities.Settings{}, fmt.Errorf("failed to get settings: %w", err)
		}
		return settings, nil
	})
}

// UpdateSettings merges req onto the stored preferences
func (s *SettingsService) UpdateSettings(ctx context.Context, req ports.UpdateSettingsRequest) (entities.Settings, error) {
	return observe(s.rt, entitySettings, "update", s.rt.latency.Update, func() (entities.Settings, error) {
		if req.TaskView != nil && !req.TaskView.IsValid() {
			return entities.Settings{}, invalidEnum("taskView", string(*req.TaskView), "list", "kanban", "calendar")
		}
		if req.Theme != nil && !req.Theme.IsValid() {
			return entities.Settings{}, invalidEnum("theme", string(*req.Theme), "light", "dark")
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return entities.Settings{}, fmt.Errorf("failed to get settings: %w", err)
		}
		req.Apply(&settings)

		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			return entities.Settings{}, fmt.Errorf("failed to save settings: %w", err)
		}

		s.logger.Infow("Settings updated successfully", "task_view", settings.TaskView, "theme", settings.Theme)
		return settings, nil
	})
}
