package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		email      VARCHAR(120) NOT NULL,
		bio        TEXT,
		avatar_url VARCHAR(200),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT authors_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id         BIGSERIAL PRIMARY KEY,
		title      VARCHAR(200) NOT NULL,
		content    TEXT NOT NULL,
		date       VARCHAR(20) NOT NULL,
		slug       VARCHAR(250) NOT NULL,
		excerpt    VARCHAR(300) NOT NULL DEFAULT '',
		featured   BOOLEAN NOT NULL DEFAULT FALSE,
		published  BOOLEAN NOT NULL DEFAULT TRUE,
		view_count BIGINT NOT NULL DEFAULT 0 CHECK (view_count >= 0),
		like_count BIGINT NOT NULL DEFAULT 0 CHECK (like_count >= 0),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		author_id  BIGINT NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		CONSTRAINT blogs_slug_key UNIQUE (slug)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_author_date ON blogs (author_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_published_featured ON blogs (published, featured)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_created_at ON blogs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_title ON blogs (title)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       VARCHAR(100) NOT NULL,
		email      VARCHAR(120) NOT NULL,
		bio        TEXT,
		avatar_url VARCHAR(200),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		CONSTRAINT authors_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      VARCHAR(200) NOT NULL,
		content    TEXT NOT NULL,
		date       VARCHAR(20) NOT NULL,
		slug       VARCHAR(250) NOT NULL,
		excerpt    VARCHAR(300) NOT NULL DEFAULT '',
		featured   BOOLEAN NOT NULL DEFAULT 0,
		published  BOOLEAN NOT NULL DEFAULT 1,
		view_count INTEGER NOT NULL DEFAULT 0 CHECK (view_count >= 0),
		like_count INTEGER NOT NULL DEFAULT 0 CHECK (like_count >= 0),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		author_id  INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		CONSTRAINT blogs_slug_key UNIQUE (slug)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_author_date ON blogs (author_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_published_featured ON blogs (published, featured)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_created_at ON blogs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_title ON blogs (title)`,
}

// EnsureSchema creates the authors/blogs tables and indexes when missing
func EnsureSchema(ctx context.Context, db *sqlx.DB, d Dialect) error {
	stmts := sqliteSchema
	if d == DialectPostgres {
		stmts = postgresSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes all tables. Blogs first because of the foreign key.
func DropSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS blogs`,
		`DROP TABLE IF EXISTS authors`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}
	return nil
}

// ResetSchema drops and recreates every table
func ResetSchema(ctx context.Context, db *sqlx.DB, d Dialect) error {
	if err := DropSchema(ctx, db); err != nil {
		return err
	}
	return EnsureSchema(ctx, db, d)
}
