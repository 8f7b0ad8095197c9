package config

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/infrastructure/database"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "APP_VERSION", "DB_DRIVER", "SQLITE_PATH", "DB_PASSWORD", "DB_HOST", "DB_PORT",
		"LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "HTTP_READ_TIMEOUT",
		"BLOG_HOME_LIMIT", "BLOG_FEATURED_LIMIT", "BLOG_RECENT_LIMIT", "BLOG_POPULAR_LIMIT",
		"DB_MAX_CONNECTIONS", "DB_MIN_CONNECTIONS", "DB_CONNECT_TIMEOUT", "DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8004", cfg.App.Port)
	assert.Equal(t, "2.0", cfg.App.Version)
	assert.Equal(t, database.DialectSQLite, cfg.Database.Dialect())
	assert.Equal(t, "blog.db", cfg.Database.SQLitePath)
	assert.Nil(t, cfg.Database.Postgres)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, BlogConfig{HomeLimit: 3, FeaturedLimit: 3, RecentLimit: 5, PopularLimit: 5}, cfg.Blog)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("BLOG_POPULAR_LIMIT", "4")
	t.Setenv("BLOG_RECENT_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 4, cfg.Blog.PopularLimit)
	assert.Equal(t, 5, cfg.Blog.RecentLimit)
}

func TestLoad_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Database.Postgres)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 6543, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "five")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT: must be an integer")
}

func TestLoad_PostgresReportsEverySetting(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "70000")
	t.Setenv("DB_MAX_CONNECTIONS", "4")
	t.Setenv("DB_MIN_CONNECTIONS", "8")
	t.Setenv("DB_CONNECT_TIMEOUT", "-1s")
	t.Setenv("DB_SSLMODE", "sometimes")

	_, err := Load()
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
	for _, key := range []string{"DB_PORT", "DB_MIN_CONNECTIONS", "DB_CONNECT_TIMEOUT", "DB_SSLMODE"} {
		assert.Contains(t, errs, key)
	}
	assert.EqualError(t, errs["DB_MIN_CONNECTIONS"], "must not exceed DB_MAX_CONNECTIONS")
}

func TestLoad_PostgresMalformedDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONNECT_TIMEOUT", "ten seconds")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT: must be a duration such as 30s")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "qa")
	t.Setenv("APP_PORT", "70000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("BLOG_HOME_LIMIT", "-1")

	_, err := Load()
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	for _, key := range []string{"APP_ENV", "APP_PORT", "DB_DRIVER", "LOG_LEVEL", "BLOG_LIMITS"} {
		assert.Contains(t, errs, key)
	}
}

func TestValidate_ProductionPostgresNeedsPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "secret")
	_, err = Load()
	assert.NoError(t, err)
}
