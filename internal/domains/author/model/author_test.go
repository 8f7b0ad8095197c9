package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/apperr"
)

func ptr(s string) *string { return &s }

func TestNewAuthor_Normalises(t *testing.T) {
	a, err := model.NewAuthor("  Alice Johnson ", " Alice@Example.COM ", ptr("   "), ptr(" https://example.com/a.png "))
	require.NoError(t, err)

	assert.Equal(t, "Alice Johnson", a.Name)
	assert.Equal(t, "alice@example.com", a.Email)
	assert.Nil(t, a.Bio)
	require.NotNil(t, a.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *a.AvatarURL)
}

func TestNewAuthor_Invalid(t *testing.T) {
	_, err := model.NewAuthor("", "nope", nil, ptr("not a url"))

	messages, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Author name is required.",
		"Invalid email format.",
		"Avatar URL must be a valid URL.",
	}, messages)
}

func TestAvatarInitial(t *testing.T) {
	assert.Equal(t, "A", (&model.Author{Name: "alice"}).AvatarInitial())
	assert.Equal(t, "É", (&model.Author{Name: "émile"}).AvatarInitial())
	assert.Equal(t, model.FallbackInitial, (&model.Author{}).AvatarInitial())
}

func TestGetOrCreateAuthorRequest_Validate(t *testing.T) {
	messages, ok := apperr.AsValidation(model.GetOrCreateAuthorRequest{Name: "J", Email: "bad"}.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{
		"Author name must be at least 2 characters long.",
		"Please provide a valid email address.",
	}, messages)

	assert.NoError(t, model.GetOrCreateAuthorRequest{Name: "Jo", Email: "jo@example.com"}.Validate())
}

func TestErrorMapping(t *testing.T) {
	assert.Equal(t, 404, model.ToHTTPStatus(model.ErrAuthorNotFound))
	assert.Equal(t, "DUPLICATE_EMAIL", model.ToErrorCode(model.ErrDuplicateEmail))
	assert.Equal(t, 409, model.ToHTTPStatus(model.ErrDuplicateEmail))

	wrapped := errors.Join(errors.New("ctx"), model.ErrDatabaseQuery)
	assert.Equal(t, 500, model.ToHTTPStatus(wrapped))
	assert.Equal(t, "INTERNAL_ERROR", model.ToErrorCode(wrapped))
}

func TestToResponse(t *testing.T) {
	a := model.Author{ID: 4, Name: "bob", Email: "bob@example.com"}

	resp := a.ToResponse()
	assert.Equal(t, "B", resp.AvatarInitial)
	assert.Equal(t, model.AuthorSummary{ID: 4, Name: "bob", Email: "bob@example.com"}, a.ToSummary())
}
