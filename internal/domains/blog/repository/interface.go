package repository

import (
	"context"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/pkg/database"
)

// RepositoryInterface defines all data access operations for Blog domain.
// Read methods return blogs joined with their author.
type RepositoryInterface interface {
	// Create inserts a blog and fills in ID and timestamps
	Create(ctx context.Context, q database.Querier, b *model.Blog) error

	GetByID(ctx context.Context, id int64) (*model.BlogWithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error)

	// List applies search, sort and limit from the filter
	List(ctx context.Context, filter model.ListFilter) ([]model.BlogWithAuthor, error)

	// Search matches title, content or author name, newest first
	Search(ctx context.Context, term string) ([]model.BlogWithAuthor, error)

	// Related returns up to limit other blogs of the same author, most recent first
	Related(ctx context.Context, blog *model.Blog, limit int) ([]model.BlogWithAuthor, error)

	Featured(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)
	Recent(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)
	Popular(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)

	// SlugsWithPrefix returns prefix itself and every "prefix-*" slug in use
	SlugsWithPrefix(ctx context.Context, q database.Querier, prefix string) ([]string, error)

	IncrementViewCount(ctx context.Context, q database.Querier, id int64) error
	IncrementLikeCount(ctx context.Context, q database.Querier, id int64) error
	// DecrementLikeCount never takes like_count below zero
	DecrementLikeCount(ctx context.Context, q database.Querier, id int64) error
	Counters(ctx context.Context, q database.Querier, id int64) (*model.Counters, error)

	Stats(ctx context.Context) (*model.Stats, error)
}
