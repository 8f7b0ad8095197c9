// Command blogctl runs database maintenance tasks for the blog API.
//
//	blogctl migrate          create tables and indexes
//	blogctl seed             insert sample authors and blogs
//	blogctl reset            drop and recreate every table
//	blogctl stats            print row counts and engagement totals
//	blogctl optimize         VACUUM and ANALYZE
//	blogctl check            run the integrity check
//	blogctl backup <dir>     copy the SQLite database into dir
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/pkg/container"
	"blog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	timeout := flag.Duration("timeout", 5*time.Minute, "overall time limit for the command")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment, cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, pg, err := container.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	c := container.NewWithDB(cfg, db, cfg.Database.Dialect())
	c.Postgres = pg
	defer c.Cleanup()

	start := time.Now()
	if err := cmd.run(ctx, c, flag.Args()[1:], os.Stdout); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("Command failed")
		c.Cleanup()
		os.Exit(1)
	}
	logger.Info("Command finished", map[string]interface{}{
		"command": flag.Arg(0),
		"elapsed": time.Since(start).String(),
	})
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: blogctl [-timeout d] <command> [args]\n\ncommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, commands[name].help)
	}
}
