package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/shared/apperr"
)

func validParams() model.NewBlogParams {
	return model.NewBlogParams{
		Title:    "Hello, World!  Go--Lang",
		Content:  "Some content that is long enough.",
		Date:     "05-01-2024",
		AuthorID: 1,
	}
}

func TestNewBlog_Derivations(t *testing.T) {
	b, err := model.NewBlog(validParams())
	require.NoError(t, err)

	assert.Equal(t, "hello-world-go-lang", b.Slug)
	assert.Equal(t, "Some content that is long enough.", b.Excerpt)
	assert.True(t, b.Published)
	assert.False(t, b.Featured)
}

func TestNewBlog_KeepsGivenExcerptAndPublished(t *testing.T) {
	p := validParams()
	p.Excerpt = "  Custom summary  "
	unpublished := false
	p.Published = &unpublished

	b, err := model.NewBlog(p)
	require.NoError(t, err)

	assert.Equal(t, "Custom summary", b.Excerpt)
	assert.False(t, b.Published)
}

func TestNewBlog_SymbolOnlyTitleFallsBackToPostSlug(t *testing.T) {
	p := validParams()
	p.Title = "!!! ???"

	b, err := model.NewBlog(p)
	require.NoError(t, err)
	assert.Equal(t, model.FallbackSlug, b.Slug)
}

func TestNewBlog_TitleLengthBoundary(t *testing.T) {
	p := validParams()
	p.Title = "Four"
	_, err := model.NewBlog(p)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	p.Title = "Fives"
	_, err = model.NewBlog(p)
	assert.NoError(t, err)

	p.Title = strings.Repeat("t", model.MaxTitleLength+1)
	_, err = model.NewBlog(p)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestNewBlog_InvalidFields(t *testing.T) {
	p := validParams()
	p.Content = "too short"
	p.Date = "2024-01-05"
	p.AuthorID = 0

	_, err := model.NewBlog(p)
	messages, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Blog content must be at least 10 characters long.",
		"Please provide a valid date.",
		"Blog must belong to an author.",
	}, messages)
}

func TestBlogMetrics(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	tests := []struct {
		name     string
		content  string
		minutes  int
		longForm bool
	}{
		{"empty", "", 1, false},
		{"150 words", words(150), 1, false},
		{"300 words rounds half to even", words(300), 2, false},
		{"400 words", words(400), 2, false},
		{"500 words rounds half to even", words(500), 2, false},
		{"1000 words", words(1000), 5, false},
		{"1001 words", words(1001), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Blog{Content: tt.content}
			assert.Equal(t, tt.minutes, b.ReadingMinutes())
			assert.Equal(t, tt.longForm, b.IsLongForm())
		})
	}

	b := model.Blog{Content: words(400)}
	assert.Equal(t, "2 min read", b.ReadingTime())
	assert.Equal(t, 400, b.WordCount())

	b = model.Blog{Content: "héllo  wörld"}
	assert.Equal(t, 2, b.WordCount())
	assert.Equal(t, 12, b.CharacterCount())
}

func TestBlog_DisplayDate(t *testing.T) {
	b := model.Blog{Date: "15-01-2024"}
	assert.Equal(t, "January 15, 2024", b.DisplayDate())

	b.Date = "not a date"
	assert.Equal(t, "not a date", b.DisplayDate())
}
