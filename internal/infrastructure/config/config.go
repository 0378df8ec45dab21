package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Latency LatencyConfig `mapstructure:"latency"`
	Share   ShareConfig   `mapstructure:"share"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// LatencyConfig holds the simulated round-trip delay of each service
// operation. When Enabled is false every operation completes immediately.
type LatencyConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	List               time.Duration `mapstructure:"list"`
	Get                time.Duration `mapstructure:"get"`
	TasksByProject     time.Duration `mapstructure:"tasks_by_project"`
	SharesByProject    time.Duration `mapstructure:"shares_by_project"`
	Create             time.Duration `mapstructure:"create"`
	Update             time.Duration `mapstructure:"update"`
	Delete             time.Duration `mapstructure:"delete"`
	Count              time.Duration `mapstructure:"count"`
	Bulk               time.Duration `mapstructure:"bulk"`
	NotificationList   time.Duration `mapstructure:"notification_list"`
	NotificationCreate time.Duration `mapstructure:"notification_create"`
}

// ShareConfig holds share link generation settings
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// SeedConfig points at the fixture file loaded at start. An empty path
// selects the embedded fixtures.
type SeedConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load loads configuration from defaults, an optional config file and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: bad defaults: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "TaskFlow")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.filename", "")

	// Latency defaults
	v.SetDefault("latency.enabled", true)
	v.SetDefault("latency.list", "300ms")
	v.SetDefault("latency.get", "200ms")
	v.SetDefault("latency.tasks_by_project", "250ms")
	v.SetDefault("latency.shares_by_project", "200ms")
	v.SetDefault("latency.create", "400ms")
	v.SetDefault("latency.update", "300ms")
	v.SetDefault("latency.delete", "300ms")
	v.SetDefault("latency.count", "150ms")
	v.SetDefault("latency.bulk", "300ms")
	v.SetDefault("latency.notification_list", "200ms")
	v.SetDefault("latency.notification_create", "250ms")

	// Share defaults
	v.SetDefault("share.base_url", "https://taskflow.pro/shared")

	// Seed defaults
	v.SetDefault("seed.path", "")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "taskflow")
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.version", "APP_VERSION")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("app.debug", "APP_DEBUG")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.format", "LOG_FORMAT")
	v.BindEnv("logger.output", "LOG_OUTPUT")
	v.BindEnv("logger.filename", "LOG_FILENAME")

	// Latency
	v.BindEnv("latency.enabled", "LATENCY_ENABLED")

	// Share
	v.BindEnv("share.base_url", "SHARE_BASE_URL")

	// Seed
	v.BindEnv("seed.path", "SEED_PATH")

	// Metrics
	v.BindEnv("metrics.enabled", "ENABLE_METRICS")
	v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")
}

func validateConfig(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	switch cfg.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger format must be json or console, got %q", cfg.Logger.Format)
	}

	if cfg.Logger.Output == "file" && cfg.Logger.Filename == "" {
		return fmt.Errorf("logger filename is required when output is file")
	}

	for name, d := range cfg.Latency.durations() {
		if d < 0 {
			return fmt.Errorf("latency %s must not be negative", name)
		}
	}

	if !strings.HasPrefix(cfg.Share.BaseURL, "http://") && !strings.HasPrefix(cfg.Share.BaseURL, "https://") {
		return fmt.Errorf("share base url must be an http(s) url")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace is required when metrics are enabled")
	}

	return nil
}

func (cfg LatencyConfig) durations() map[string]time.Duration {
	return map[string]time.Duration{
		"list":                cfg.List,
		"get":                 cfg.Get,
		"tasks_by_project":    cfg.TasksByProject,
		"shares_by_project":   cfg.SharesByProject,
		"create":              cfg.Create,
		"update":              cfg.Update,
		"delete":              cfg.Delete,
		"count":               cfg.Count,
		"bulk":                cfg.Bulk,
		"notification_list":   cfg.NotificationList,
		"notification_create": cfg.NotificationCreate,
	}
}

// Instant returns a latency configuration with every delay disabled.
func Instant() LatencyConfig {
	return LatencyConfig{}
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
