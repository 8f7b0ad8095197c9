package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/infrastructure/database"
)

// Config holds the whole application configuration,
// populated from environment variables (.env is loaded by main)
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig
	Blog     BlogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type HTTPConfig struct {
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the engine. SQLite is the local default;
// postgres reads its pool settings through loadPostgresConfig.
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	Postgres   *database.DBConfig
}

type LogConfig struct {
	Level string
}

// BlogConfig holds the default sizes of the accessor queries
type BlogConfig struct {
	HomeLimit     int
	FeaturedLimit int
	RecentLimit   int
	PopularLimit  int
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8004"),
			Version:     getEnv("APP_VERSION", "2.0"),
		},
		HTTP: HTTPConfig{
			AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "blog.db"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Blog: BlogConfig{
			HomeLimit:     getEnvInt("BLOG_HOME_LIMIT", 3),
			FeaturedLimit: getEnvInt("BLOG_FEATURED_LIMIT", 3),
			RecentLimit:   getEnvInt("BLOG_RECENT_LIMIT", 5),
			PopularLimit:  getEnvInt("BLOG_POPULAR_LIMIT", 5),
		},
	}

	if cfg.Database.Dialect() == database.DialectPostgres {
		pg, err := loadPostgresConfig()
		if err != nil {
			return nil, fmt.Errorf("postgres config validation failed: %w", err)
		}
		cfg.Database.Postgres = pg
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Dialect resolves DB_DRIVER; an unknown driver yields ""
func (d DatabaseConfig) Dialect() database.Dialect {
	dialect, _ := database.ParseDialect(d.Driver)
	return dialect
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	return validation.Errors{
		"APP_ENV": validation.Validate(c.App.Environment,
			validation.Required,
			validation.In("development", "staging", "production", "test"),
		),
		"APP_PORT": validation.Validate(c.App.Port,
			validation.Required,
			validation.By(isPort),
		),
		"DB_DRIVER": validation.Validate(c.Database.Driver,
			validation.Required,
			validation.By(func(interface{}) error {
				if c.Database.Dialect() == "" {
					return validation.NewError("config_driver", "must be postgres or sqlite")
				}
				return nil
			}),
		),
		"SQLITE_PATH": validation.Validate(c.Database.SQLitePath,
			validation.When(c.Database.Dialect() == database.DialectSQLite, validation.Required),
		),
		"DB_PASSWORD": validation.Validate(c.postgresPassword(),
			validation.When(c.App.Environment == "production" && c.Database.Dialect() == database.DialectPostgres,
				validation.Required),
		),
		"LOG_LEVEL": validation.Validate(strings.ToLower(c.Log.Level),
			validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"),
		),
		"BLOG_LIMITS": validation.Validate(
			[]int{c.Blog.HomeLimit, c.Blog.FeaturedLimit, c.Blog.RecentLimit, c.Blog.PopularLimit},
			validation.Each(validation.Min(1), validation.Max(100)),
		),
	}.Filter()
}

func (c *Config) postgresPassword() string {
	if c.Database.Postgres == nil {
		return ""
	}
	return c.Database.Postgres.Password
}

func isPort(value interface{}) error {
	s, _ := value.(string)
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return validation.NewError("config_port", "must be a port number")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
