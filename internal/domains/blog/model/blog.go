package model

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/apperr"
	"blog-backend/internal/shared/utils"
)

const (
	MaxTitleLength     = 200
	MinTitleLength     = 5
	MinContentLength   = 10
	MaxExcerptLength   = 300
	WordsPerMinute     = 200
	LongFormWordCount  = 1000
	APIContentPreview  = 200
	DefaultRelatedSize = 3

	// Used when a title has no letters or digits to build a slug from
	FallbackSlug = "post"
)

// Blog is a published post. Date is kept as the DD-MM-YYYY display string.
type Blog struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Date      string    `json:"date" db:"date"`
	Slug      string    `json:"slug" db:"slug"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Featured  bool      `json:"featured" db:"featured"`
	Published bool      `json:"published" db:"published"`
	ViewCount int64     `json:"view_count" db:"view_count"`
	LikeCount int64     `json:"like_count" db:"like_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
}

// BlogWithAuthor is a blog row joined with its author
type BlogWithAuthor struct {
	Blog
	Author authormodel.Author `db:"author"`
}

// NewBlogParams carries the raw fields of a new post.
// Slug and Excerpt are derived when empty; Published defaults to true.
type NewBlogParams struct {
	Title     string
	Content   string
	Date      string
	Slug      string
	Excerpt   string
	Featured  bool
	Published *bool
	AuthorID  int64
}

// NewBlog builds a validated Blog with derived fields filled in
func NewBlog(p NewBlogParams) (*Blog, error) {
	b := &Blog{
		Title:     strings.TrimSpace(p.Title),
		Content:   strings.TrimSpace(p.Content),
		Date:      strings.TrimSpace(p.Date),
		Slug:      strings.TrimSpace(p.Slug),
		Excerpt:   strings.TrimSpace(p.Excerpt),
		Featured:  p.Featured,
		Published: true,
		AuthorID:  p.AuthorID,
	}
	if p.Published != nil {
		b.Published = *p.Published
	}

	if b.Slug == "" {
		b.Slug = utils.GenerateSlug(b.Title)
	}
	if strings.Trim(b.Slug, "-") == "" {
		b.Slug = FallbackSlug
	}
	if b.Excerpt == "" {
		b.Excerpt = GenerateExcerpt(b.Content)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the entity invariants
func (b Blog) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			validation.Required.Error("Blog title is required."),
			validation.RuneLength(MinTitleLength, MaxTitleLength).
				Error(fmt.Sprintf("Blog title must be between %d and %d characters long.", MinTitleLength, MaxTitleLength)),
		),
		validation.Field(&b.Content,
			validation.Required.Error("Blog content is required."),
			validation.RuneLength(MinContentLength, 0).Error("Blog content must be at least 10 characters long."),
		),
		validation.Field(&b.Date,
			validation.Required.Error("Publication date is required."),
			validation.By(canonicalDate),
		),
		validation.Field(&b.Slug,
			validation.Required.Error("Slug could not be derived from the title."),
			validation.RuneLength(0, utils.MaxSlugLength).Error("Slug is too long."),
		),
		validation.Field(&b.Excerpt,
			validation.RuneLength(0, MaxExcerptLength).Error("Excerpt must be at most 300 characters long."),
		),
		validation.Field(&b.AuthorID,
			validation.Required.Error("Blog must belong to an author."),
			validation.Min(int64(1)).Error("Blog must belong to an author."),
		),
	)
	return apperr.FromOzzo(err, "title", "content", "date", "slug", "excerpt", "author_id")
}

func canonicalDate(value interface{}) error {
	s, _ := value.(string)
	if _, err := time.Parse(StoredDateLayout, s); err != nil {
		return validation.NewError("validation_date_format", "Please provide a valid date.")
	}
	return nil
}

// ========================================
// DERIVED METRICS
// ========================================

func (b *Blog) WordCount() int {
	return len(strings.Fields(b.Content))
}

func (b *Blog) CharacterCount() int {
	return utf8.RuneCountInString(b.Content)
}

// ReadingMinutes assumes 200 words per minute, rounding half to even, never below 1
func (b *Blog) ReadingMinutes() int {
	minutes := int(math.RoundToEven(float64(b.WordCount()) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (b *Blog) ReadingTime() string {
	return fmt.Sprintf("%d min read", b.ReadingMinutes())
}

func (b *Blog) IsLongForm() bool {
	return b.WordCount() > LongFormWordCount
}

// DisplayDate renders the stored date as "January 05, 2024"
func (b *Blog) DisplayDate() string {
	return FormatDisplayDate(b.Date)
}

// Counters is the engagement snapshot returned after a counter update
type Counters struct {
	ID        int64 `json:"id" db:"id"`
	ViewCount int64 `json:"view_count" db:"view_count"`
	LikeCount int64 `json:"like_count" db:"like_count"`
}
