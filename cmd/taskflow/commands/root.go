package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/infrastructure/app"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
)

// Env is shared by every command: flags plus the application built from them.
type Env struct {
	configPath string
	seedPath   string
	instant    bool
	asJSON     bool

	logger *logger.Logger
	app    *app.App
}

// NewRootCommand creates the taskflow command tree
func NewRootCommand() *cobra.Command {
	env := &Env{}

	root := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow task and project dashboard",
		Long: strings.TrimSpace(`
TaskFlow manages projects, tasks, share links and notifications in memory.
Every run starts from the seed fixtures; nothing is written back.`),
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # All high priority tasks that are not done yet
  taskflow tasks --priority high --status todo

  # The kanban board of project 1
  taskflow board 1

  # Drag task 3 to the done column
  taskflow move 3 done`),
	}

	root.PersistentFlags().StringVar(&env.configPath, "config", "", "Path to a config file (yaml, toml or json)")
	root.PersistentFlags().StringVar(&env.seedPath, "seed", "", "Path to a seed fixture file (default: built-in fixtures)")
	root.PersistentFlags().BoolVar(&env.instant, "instant", false, "Disable simulated latency")
	root.PersistentFlags().BoolVar(&env.asJSON, "json", false, "Print JSON instead of text")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return env.setup()
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return env.close()
	}

	root.AddCommand(NewProjectsCommand(env))
	root.AddCommand(NewTasksCommand(env))
	root.AddCommand(NewBoardCommand(env))
	root.AddCommand(NewMoveCommand(env))
	root.AddCommand(NewCalendarCommand(env))
	root.AddCommand(NewSharesCommand(env))
	root.AddCommand(NewNotificationsCommand(env))
	root.AddCommand(NewSettingsCommand(env))
	root.AddCommand(NewStatsCommand(env))
	root.AddCommand(NewVersionCommand(env))

	return root
}

func (e *Env) setup() error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if e.seedPath != "" {
		cfg.Seed.Path = e.seedPath
	}
	if e.instant {
		cfg.Latency.Enabled = false
	}
	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := app.New(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	e.logger, e.app = appLogger, a
	return nil
}

func (e *Env) close() error {
	if e.logger == nil {
		return nil
	}
	// syncing stderr fails on some platforms; nothing is lost
	_ = e.logger.Close()
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
