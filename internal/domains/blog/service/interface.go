package service

import (
	"context"

	"blog-backend/internal/domains/blog/model"
)

// ServiceInterface defines all business logic operations for Blog domain
type ServiceInterface interface {
	// Publish validates the request and, in one transaction, upserts the author
	// by email and inserts the blog under a free slug
	Publish(ctx context.Context, req model.PublishBlogRequest) (*model.BlogWithAuthor, error)

	GetByID(ctx context.Context, id int64) (*model.BlogWithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error)

	// Detail returns the blog with related posts of the same author
	Detail(ctx context.Context, id int64) (*model.BlogWithAuthor, []model.BlogWithAuthor, error)

	List(ctx context.Context, filter model.ListFilter) ([]model.BlogWithAuthor, error)
	Search(ctx context.Context, term string) ([]model.BlogWithAuthor, error)

	// Home returns the newest blogs and the featured ones
	Home(ctx context.Context) (recent, featured []model.BlogWithAuthor, err error)

	Featured(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)
	Recent(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)
	Popular(ctx context.Context, limit int) ([]model.BlogWithAuthor, error)

	Stats(ctx context.Context) (*model.Stats, error)

	// Counter updates, each in its own transaction, returning fresh values
	RecordView(ctx context.Context, id int64) (*model.Counters, error)
	Like(ctx context.Context, id int64) (*model.Counters, error)
	Unlike(ctx context.Context, id int64) (*model.Counters, error)
}
