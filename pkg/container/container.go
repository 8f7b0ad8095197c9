package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/logger"

	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
	blogHandler "blog-backend/internal/domains/blog/handler"
	blogRepo "blog-backend/internal/domains/blog/repository"
	blogService "blog-backend/internal/domains/blog/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Build order: config → database → repositories → services → handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	DB       *sqlx.DB
	Dialect  database.Dialect
	Postgres *database.PostgresDB // nil when running on SQLite

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo authorRepo.RepositoryInterface
	BlogRepo   blogRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService authorService.ServiceInterface
	BlogService   blogService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BlogHandler   *blogHandler.BlogHandler
}

// NewContainer connects to the configured database, makes sure the schema
// exists and wires every layer on top of it
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("driver", cfg.Database.Driver).Msg("Initializing DI container")

	db, pg, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dialect := cfg.Database.Dialect()
	if err := database.EnsureSchema(ctx, db, dialect); err != nil {
		_ = db.Close()
		if pg != nil {
			_ = pg.Close()
		}
		return nil, err
	}

	c := NewWithDB(cfg, db, dialect)
	c.Postgres = pg

	log.Info().Msg("DI container initialized")
	return c, nil
}

// OpenDatabase opens the engine selected by DB_DRIVER.
// The PostgresDB is returned too so its pool can be health-checked and closed.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, *database.PostgresDB, error) {
	switch cfg.Database.Dialect() {
	case database.DialectPostgres:
		pg := database.NewPostgresDB(cfg.Database.Postgres)
		if err := pg.Connect(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.HealthCheck(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, fmt.Errorf("database health check failed: %w", err)
		}

		db, err := pg.SQLX()
		if err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return db, pg, nil

	case database.DialectSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		log.Info().Str("path", cfg.Database.SQLitePath).Msg("[DATABASE] SQLite opened")
		return db, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewWithDB wires repositories, services and handlers on an open database
func NewWithDB(cfg *config.Config, db *sqlx.DB, dialect database.Dialect) *Container {
	c := &Container{
		Config:  cfg,
		DB:      db,
		Dialect: dialect,
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewSQLRepository(c.DB, c.Dialect)
	c.BlogRepo = blogRepo.NewSQLRepository(c.DB, c.Dialect)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.DB, c.AuthorRepo)

	limits := blogService.DefaultLimits()
	if c.Config != nil {
		limits = blogService.Limits{
			Home:     c.Config.Blog.HomeLimit,
			Featured: c.Config.Blog.FeaturedLimit,
			Recent:   c.Config.Blog.RecentLimit,
			Popular:  c.Config.Blog.PopularLimit,
		}
	}
	c.BlogService = blogService.NewBlogService(c.DB, c.BlogRepo, c.AuthorRepo, limits)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
}

// HealthCheck pings the database
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Postgres != nil {
		return c.Postgres.HealthCheck(ctx)
	}
	return database.Ping(ctx, c.DB)
}

// Cleanup releases database resources. Call it during graceful shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("Failed to close database", err)
		}
	}
	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			logger.Warn("Failed to close postgres pool", err)
		}
	}

	log.Info().Msg("Container cleanup completed")
}
