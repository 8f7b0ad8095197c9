package database

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL engine behind a *sqlx.DB.
// Repositories use it to pick placeholder style and schema flavour.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// ParseDialect maps a DB_DRIVER value to a Dialect
func ParseDialect(driver string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, true
	case "sqlite", "sqlite3":
		return DialectSQLite, true
	default:
		return "", false
	}
}

// Placeholder returns the bind-variable style of the engine
//   - PostgreSQL: $1, $2
//   - SQLite: ?
func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// Builder returns a squirrel statement builder bound to the dialect placeholder format
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder())
}

// UniqueViolation reports whether err is a unique-constraint violation and,
// when it is, returns what the engine says about the offending constraint
// ("blogs_slug_key" on PostgreSQL, "blogs.slug" on SQLite).
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		if pgErr.ConstraintName != "" {
			return pgErr.ConstraintName, true
		}
		return pgErr.Message, true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			return "", false
		}
		msg := liteErr.Error()
		if idx := strings.Index(msg, "failed: "); idx >= 0 {
			return msg[idx+len("failed: "):], true
		}
		return msg, true
	}

	return "", false
}

// IsUniqueViolationOn reports whether err is a unique violation mentioning column
func IsUniqueViolationOn(err error, column string) bool {
	constraint, ok := UniqueViolation(err)
	return ok && strings.Contains(constraint, column)
}
