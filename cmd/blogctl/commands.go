package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/seed"
	"blog-backend/pkg/container"
)

type command struct {
	help string
	run  func(ctx context.Context, c *container.Container, args []string, out io.Writer) error
}

var commandOrder = []string{"migrate", "seed", "reset", "stats", "optimize", "check", "backup", "restore"}

var commands = map[string]command{
	"migrate": {
		help: "create tables and indexes when missing",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			if err := database.EnsureSchema(ctx, c.DB, c.Dialect); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database tables created successfully!")
			return nil
		},
	},
	"seed": {
		help: "insert sample authors and blogs (skipped when data exists)",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			if err := database.EnsureSchema(ctx, c.DB, c.Dialect); err != nil {
				return err
			}
			res, err := seed.Run(ctx, c.DB, c.AuthorRepo, c.BlogRepo)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(out, "Database already contains data. Skipping seed.")
				return nil
			}
			fmt.Fprintf(out, "Database seeded with %d authors and %d blogs.\n", res.Authors, res.Blogs)
			return nil
		},
	},
	"reset": {
		help: "drop every table and recreate the schema",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			if err := database.ResetSchema(ctx, c.DB, c.Dialect); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database reset successfully!")
			return nil
		},
	},
	"stats": {
		help: "print row counts and engagement totals",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			stats, err := c.BlogService.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "total_authors:   %d\n", stats.TotalAuthors)
			fmt.Fprintf(out, "total_blogs:     %d\n", stats.TotalBlogs)
			fmt.Fprintf(out, "published_blogs: %d\n", stats.PublishedBlogs)
			fmt.Fprintf(out, "featured_blogs:  %d\n", stats.FeaturedBlogs)
			fmt.Fprintf(out, "total_views:     %d\n", stats.TotalViews)
			fmt.Fprintf(out, "total_likes:     %d\n", stats.TotalLikes)
			return nil
		},
	},
	"optimize": {
		help: "run VACUUM and ANALYZE",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			if err := database.Optimize(ctx, c.DB, c.Dialect); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database optimized successfully!")
			return nil
		},
	},
	"check": {
		help: "run the database integrity check",
		run: func(ctx context.Context, c *container.Container, _ []string, out io.Writer) error {
			ok, result, err := database.IntegrityCheck(ctx, c.DB, c.Dialect)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("integrity check failed: %s", result)
			}
			fmt.Fprintln(out, "Database integrity check passed!")
			return nil
		},
	},
	"backup": {
		help: "copy the SQLite database into <dir> as blog_backup_<timestamp>.db",
		run: func(ctx context.Context, c *container.Container, args []string, out io.Writer) error {
			if len(args) != 1 {
				return errors.New("backup needs exactly one argument: the target directory")
			}
			path, err := database.BackupSQLite(ctx, c.DB, c.Dialect, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Database backed up to: %s\n", path)
			return nil
		},
	},
	"restore": {
		help: "replace the SQLite database with a backup <file>",
		run: func(_ context.Context, c *container.Container, args []string, out io.Writer) error {
			if len(args) != 1 {
				return errors.New("restore needs exactly one argument: the backup file")
			}
			if c.Dialect != database.DialectSQLite || c.Config == nil {
				return errors.New("restore is only supported for a configured sqlite database")
			}

			// The file is replaced underneath the pool, so no connection may outlive it.
			if err := c.DB.Close(); err != nil {
				return fmt.Errorf("failed to close database before restore: %w", err)
			}
			if err := database.RestoreSQLite(c.Dialect, args[0], c.Config.Database.SQLitePath); err != nil {
				return err
			}
			fmt.Fprintf(out, "Database restored from: %s\n", args[0])
			return nil
		},
	},
}
