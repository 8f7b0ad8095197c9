package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/apperr"
)

// ========================================
// REQUEST DTOs
// ========================================

// GetOrCreateAuthorRequest - POST /api/v1/authors
type GetOrCreateAuthorRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (r GetOrCreateAuthorRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)

	err := validation.Errors{
		"name": validation.Validate(name,
			validation.Required.Error("Author name is required."),
			validation.RuneLength(MinFormNameLength, 0).Error("Author name must be at least 2 characters long."),
			validation.RuneLength(0, MaxNameLength).Error("Author name is too long."),
		),
		"email": validation.Validate(email,
			validation.Required.Error("Author email is required."),
			validation.Match(EmailPattern).Error("Please provide a valid email address."),
		),
	}.Filter()

	return apperr.FromOzzo(err, "name", "email")
}

// ========================================
// RESPONSE DTOs
// ========================================

// AuthorSummary is the nested author object inside blog payloads
type AuthorSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthorResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Bio           *string   `json:"bio,omitempty"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	AvatarInitial string    `json:"avatar_initial"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BlogRef is a compact reference to one of the author's posts
type BlogRef struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Date      string    `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuthorProfileResponse - GET /api/v1/authors/:id
type AuthorProfileResponse struct {
	AuthorResponse
	BlogCount  int       `json:"blog_count"`
	LatestBlog *BlogRef  `json:"latest_blog"`
	Blogs      []BlogRef `json:"blogs"`
}

// ========================================
// CONVERTERS
// ========================================

func (a *Author) ToSummary() AuthorSummary {
	return AuthorSummary{ID: a.ID, Name: a.Name, Email: a.Email}
}

func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Bio:           a.Bio,
		AvatarURL:     a.AvatarURL,
		AvatarInitial: a.AvatarInitial(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
