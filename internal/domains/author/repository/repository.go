package repository

import (
	"context"

	"blog-backend/internal/domains/author/model"
	"blog-backend/pkg/database"
)

// RepositoryInterface defines all data access operations for Author domain.
// Methods taking a database.Querier can run inside a caller's transaction.
type RepositoryInterface interface {
	// GetByID retrieves an author by ID
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	// GetByEmail retrieves an author by (normalised) email
	GetByEmail(ctx context.Context, q database.Querier, email string) (*model.Author, error)

	// Create inserts a new author and fills in ID and timestamps
	Create(ctx context.Context, q database.Querier, a *model.Author) error

	// UpdateName renames an author and bumps updated_at
	UpdateName(ctx context.Context, q database.Querier, id int64, name string) error

	// UpsertByEmail returns the author owning email, renaming it when name differs,
	// or creates a new one
	UpsertByEmail(ctx context.Context, q database.Querier, name, email string) (*model.Author, error)

	// Delete removes an author; their blogs go with them
	Delete(ctx context.Context, id int64) error

	// Count returns total number of authors
	Count(ctx context.Context) (int, error)

	// BlogCount returns how many blogs an author has written
	BlogCount(ctx context.Context, id int64) (int, error)

	// ListBlogRefs returns the author's blogs, newest first
	ListBlogRefs(ctx context.Context, id int64) ([]model.BlogRef, error)
}
