package service

import (
	"context"

	"blog-backend/internal/domains/author/model"
)

// ServiceInterface defines all business logic operations for Author domain
type ServiceInterface interface {
	// GetOrCreate returns the author owning req.Email, creating it when missing.
	// created reports whether a new row was inserted.
	GetOrCreate(ctx context.Context, req model.GetOrCreateAuthorRequest) (a *model.Author, created bool, err error)

	// GetByID retrieves an author by ID
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	// GetProfile returns the author with blog count, latest blog and all blogs
	GetProfile(ctx context.Context, id int64) (*model.AuthorProfileResponse, error)

	// Delete removes an author together with all of their blogs
	Delete(ctx context.Context, id int64) error
}
