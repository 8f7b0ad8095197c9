package config

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/infrastructure/database"
)

var sslModes = []interface{}{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// loadPostgresConfig reads the PostgreSQL pool settings.
// Malformed values and out-of-range settings are reported together, keyed by variable.
func loadPostgresConfig() (*database.DBConfig, error) {
	env := envReader{errs: validation.Errors{}}

	pg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "blog"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "blog"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.int("DB_MAX_RETRIES", 5),
		RetryDelay:     env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	if err := env.errs.Filter(); err != nil {
		return nil, err
	}
	if err := validatePostgres(pg); err != nil {
		return nil, err
	}
	return pg, nil
}

func validatePostgres(pg *database.DBConfig) error {
	return validation.Errors{
		"DB_PORT":    validation.Validate(pg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		"DB_NAME":    validation.Validate(pg.DBName, validation.Required),
		"DB_SSLMODE": validation.Validate(pg.SSLMode, validation.In(sslModes...)),

		"DB_MAX_CONNECTIONS": validation.Validate(pg.MaxConns, validation.Required, validation.Min(int32(1))),
		"DB_MIN_CONNECTIONS": validation.Validate(pg.MinConns,
			validation.Min(int32(0)),
			validation.Max(pg.MaxConns).Error("must not exceed DB_MAX_CONNECTIONS"),
		),
		"DB_MAX_CONN_LIFETIME":   validation.Validate(pg.MaxConnLifetime, validation.Min(time.Duration(0))),
		"DB_MAX_CONN_IDLE_TIME":  validation.Validate(pg.MaxConnIdleTime, validation.Min(time.Duration(0))),
		"DB_HEALTH_CHECK_PERIOD": validation.Validate(pg.HealthCheckPeriod, validation.Required, validation.Min(time.Duration(0))),

		"DB_MAX_RETRIES":     validation.Validate(pg.MaxRetries, validation.Min(0)),
		"DB_RETRY_DELAY":     validation.Validate(pg.RetryDelay, validation.Min(time.Duration(0))),
		"DB_CONNECT_TIMEOUT": validation.Validate(pg.ConnectTimeout, validation.Required, validation.Min(time.Duration(0))),
	}.Filter()
}

// envReader parses typed variables. Unlike getEnvInt it does not fall back
// silently: a malformed value is recorded under its key.
type envReader struct {
	errs validation.Errors
}

func (r envReader) int(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		r.errs[key] = validation.NewError("config_int", "must be an integer")
		return defaultValue
	}
	return value
}

func (r envReader) duration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		r.errs[key] = validation.NewError("config_duration", "must be a duration such as 30s")
		return defaultValue
	}
	return value
}
