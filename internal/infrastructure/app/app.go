package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskmaster/taskflow/internal/adapters/repository"
	"github.com/taskmaster/taskflow/internal/application/kanban"
	"github.com/taskmaster/taskflow/internal/application/services"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/infrastructure/database"
	"github.com/taskmaster/taskflow/internal/infrastructure/fixtures"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/infrastructure/metrics"
)

// App wires the stores, services and metrics together
type App struct {
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	metrics *metrics.Recorder

	Projects      *services.ProjectService
	Tasks         *services.TaskService
	Shares        *services.ShareService
	Notifications *services.NotificationService
	Settings      *services.SettingsService

	now func() time.Time
}

// Option configures an App
type Option func(*options)

type options struct {
	seed  *fixtures.Seed
	now   func() time.Time
	newID func() string
	sleep func(time.Duration)
}

// WithSeed uses seed instead of loading the configured fixtures.
func WithSeed(seed *fixtures.Seed) Option {
	return func(o *options) { o.seed = seed }
}

// WithClock replaces time.Now everywhere in the app.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs replaces the id generator of every store.
func WithIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithSleep replaces the simulated latency wait.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

// New creates a new application instance
func New(cfg *config.Config, appLogger *logger.Logger, opts ...Option) (*App, error) {
	if appLogger == nil {
		appLogger = logger.NewNop()
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	seed := o.seed
	if seed == nil {
		var err error
		seed, err = fixtures.Load(cfg.Seed.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
	}

	db := database.New(seed, cfg.Share, repository.Options{Now: o.now, NewID: o.newID})

	rtOpts := []services.RuntimeOption{services.WithClock(o.now), services.WithSleep(o.sleep)}
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New(cfg.Metrics)
		rtOpts = append(rtOpts, services.WithRecorder(recorder))
	}
	rt := services.NewRuntime(cfg.Latency, appLogger, rtOpts...)

	a := &App{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		metrics:       recorder,
		Projects:      services.NewProjectService(db.Projects, rt),
		Tasks:         services.NewTaskService(db.Tasks, rt),
		Shares:        services.NewShareService(db.Shares, rt),
		Notifications: services.NewNotificationService(db.Notifications, rt),
		Settings:      services.NewSettingsService(db.Settings, rt),
		now:           o.now,
	}

	appLogger.Debugw("Application initialised",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"latency_enabled", cfg.Latency.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)
	return a, nil
}

func (a *App) Config() *config.Config { return a.config }

func (a *App) Logger() *logger.Logger { return a.logger }

// Metrics returns the recorder, or nil when metrics are disabled.
func (a *App) Metrics() *metrics.Recorder { return a.metrics }

func (a *App) Now() time.Time { return a.now() }

// Reset returns every store to its seed
func (a *App) Reset() {
	a.db.Reset()
	a.logger.Infow("Stores reset to seed")
}

// Stats returns the number of records per store
func (a *App) Stats(ctx context.Context) map[string]interface{} {
	return a.db.Stats(ctx)
}

// Dashboard is what the main page loads on open.
type Dashboard struct {
	Projects    []*entities.Project
	Tasks       []*entities.Task
	UnreadCount int
}

// LoadDashboard loads projects, tasks and the unread count concurrently.
func (a *App) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := a.Projects.ListProjects(gctx)
		d.Projects = projects
		return err
	})
	g.Go(func() error {
		tasks, err := a.Tasks.ListTasks(gctx)
		d.Tasks = tasks
		return err
	})
	g.Go(func() error {
		count, err := a.Notifications.UnreadCount(gctx)
		d.UnreadCount = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return &d, nil
}

// NewBoard returns a kanban board over the tasks of one project, committing
// moves through the task service.
func (a *App) NewBoard(ctx context.Context, projectID string, notify kanban.Notifier) (*kanban.Board, error) {
	tasks, err := a.Tasks.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	board := kanban.NewBoard(a.Tasks, notify, a.logger)
	board.Load(tasks)
	return board, nil
}

// NewDragController returns a drag controller that drops onto board.
func (a *App) NewDragController(board *kanban.Board, opts ...kanban.ControllerOption) *kanban.Controller {
	opts = append([]kanban.ControllerOption{kanban.WithControllerLogger(a.logger)}, opts...)
	return kanban.NewController(board, opts...)
}
