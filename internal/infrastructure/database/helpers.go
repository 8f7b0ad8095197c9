package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Ping checks that the database answers within 5s
func Ping(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Optimize reclaims space and refreshes planner statistics
func Optimize(ctx context.Context, db *sqlx.DB, d Dialect) error {
	stmts := []string{"VACUUM", "ANALYZE"}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s failed: %w", stmt, err)
		}
	}

	log.Info().Str("dialect", string(d)).Msg("[DATABASE] Optimized")
	return nil
}

// IntegrityCheck runs PRAGMA integrity_check on SQLite.
// PostgreSQL has no equivalent single statement; a round trip is the check there.
func IntegrityCheck(ctx context.Context, db *sqlx.DB, d Dialect) (bool, string, error) {
	if d != DialectSQLite {
		if err := Ping(ctx, db); err != nil {
			return false, err.Error(), nil
		}
		return true, "ok", nil
	}

	var result string
	if err := db.GetContext(ctx, &result, "PRAGMA integrity_check"); err != nil {
		return false, "", fmt.Errorf("integrity check failed: %w", err)
	}
	return result == "ok", result, nil
}

// BackupSQLite writes a consistent copy of the database to
// <dir>/blog_backup_YYYYMMDD_HHMMSS.db using VACUUM INTO.
func BackupSQLite(ctx context.Context, db *sqlx.DB, d Dialect, dir string, now time.Time) (string, error) {
	if d != DialectSQLite {
		return "", fmt.Errorf("backup is only supported for sqlite (use pg_dump for postgres)")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("blog_backup_%s.db", now.Format("20060102_150405"))
	target := filepath.Join(dir, name)

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return "", fmt.Errorf("backup failed: %w", err)
	}

	log.Info().Str("path", target).Msg("[DATABASE] Backup written")
	return target, nil
}

// sqliteHeader opens every SQLite database file
var sqliteHeader = []byte("SQLite format 3\x00")

// RestoreSQLite copies a backup file over the database at dst.
// The caller must close every connection to dst first.
// The copy lands in a temp file next to dst and is renamed into place,
// so a failed restore leaves the old database untouched.
func RestoreSQLite(d Dialect, src, dst string) error {
	if d != DialectSQLite {
		return fmt.Errorf("restore is only supported for sqlite (use pg_restore for postgres)")
	}
	if dst == "" || dst == InMemory {
		return fmt.Errorf("restore needs a file-backed sqlite database, got %q", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	defer in.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(in, header); err != nil || !bytes.Equal(header, sqliteHeader) {
		return fmt.Errorf("%s is not a sqlite database", src)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".restore-*")
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("restore failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	log.Info().Str("from", src).Str("to", dst).Msg("[DATABASE] Restored")
	return nil
}
