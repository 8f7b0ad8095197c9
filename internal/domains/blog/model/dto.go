package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/apperr"
	"blog-backend/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// PublishBlogRequest - POST /api/v1/blogs
// Accepts JSON or a form post with the same field names.
type PublishBlogRequest struct {
	AuthorName  string `json:"author_name" form:"author_name"`
	AuthorEmail string `json:"author_email" form:"author_email"`
	Title       string `json:"blog_title" form:"blog_title"`
	Content     string `json:"blog_content" form:"blog_content"`
	Date        string `json:"blog_date" form:"blog_date"`
	Excerpt     string `json:"excerpt,omitempty" form:"excerpt"`
	Featured    bool   `json:"featured,omitempty" form:"featured"`
}

// Trimmed returns a copy with every text field trimmed
func (r PublishBlogRequest) Trimmed() PublishBlogRequest {
	r.AuthorName = strings.TrimSpace(r.AuthorName)
	r.AuthorEmail = strings.TrimSpace(r.AuthorEmail)
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Date = strings.TrimSpace(r.Date)
	r.Excerpt = strings.TrimSpace(r.Excerpt)
	return r
}

// Validate reports every field problem at once, in form order
func (r PublishBlogRequest) Validate() error {
	r = r.Trimmed()

	err := validation.Errors{
		"author_name": validation.Validate(r.AuthorName,
			validation.Required.Error("Author name is required."),
			validation.RuneLength(authormodel.MinFormNameLength, 0).Error("Author name must be at least 2 characters long."),
			validation.RuneLength(0, authormodel.MaxNameLength).Error("Author name is too long."),
		),
		"author_email": validation.Validate(r.AuthorEmail,
			validation.Required.Error("Author email is required."),
			validation.Match(authormodel.EmailPattern).Error("Please provide a valid email address."),
		),
		"blog_title": validation.Validate(r.Title,
			validation.Required.Error("Blog title is required."),
			validation.RuneLength(MinTitleLength, 0).Error("Blog title must be at least 5 characters long."),
		),
		"blog_content": validation.Validate(r.Content,
			validation.Required.Error("Blog content is required."),
			validation.RuneLength(MinContentLength, 0).Error("Blog content must be at least 10 characters long."),
		),
		"blog_date": validation.Validate(r.Date,
			validation.Required.Error("Publication date is required."),
			validation.By(func(value interface{}) error {
				if _, ok := NormalizeDate(value.(string)); !ok {
					return validation.NewError("validation_date", "Please provide a valid date.")
				}
				return nil
			}),
		),
	}.Filter()

	return apperr.FromOzzo(err, "author_name", "author_email", "blog_title", "blog_content", "blog_date")
}

// ========================================
// RESPONSE DTOs
// ========================================

// ListingItem is one entry of GET /blogs; author is the name only
type ListingItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Author  string `json:"author"`
}

type ListingResponse struct {
	Blogs []ListingItem `json:"blogs"`
}

// APIBlogItem is one entry of GET /api/blogs
type APIBlogItem struct {
	ID      int64                     `json:"id"`
	Title   string                    `json:"title"`
	Content string                    `json:"content"`
	Date    string                    `json:"date"`
	Author  authormodel.AuthorSummary `json:"author"`
}

type APIBlogsResponse struct {
	Success bool          `json:"success"`
	Blogs   []APIBlogItem `json:"blogs"`
}

// APIErrorResponse is the failure shape of GET /api/blogs
type APIErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AuthorCard is the author block embedded in detailed blog payloads
type AuthorCard struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AvatarInitial string `json:"avatar_initial"`
}

// BlogResponse is the detailed representation of a post
type BlogResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content,omitempty"`
	Excerpt        string     `json:"excerpt"`
	Date           string     `json:"date"`
	FormattedDate  string     `json:"formatted_date"`
	Featured       bool       `json:"featured"`
	Published      bool       `json:"published"`
	ViewCount      int64      `json:"view_count"`
	LikeCount      int64      `json:"like_count"`
	WordCount      int        `json:"word_count"`
	CharacterCount int        `json:"character_count"`
	ReadingTime    string     `json:"reading_time"`
	IsLongForm     bool       `json:"is_long_form"`
	Author         AuthorCard `json:"author"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type BlogDetailResponse struct {
	Blog    BlogResponse   `json:"blog"`
	Related []BlogResponse `json:"related"`
}

type HomeResponse struct {
	Recent   []BlogResponse `json:"recent"`
	Featured []BlogResponse `json:"featured"`
}

// Stats - GET /api/v1/about
type Stats struct {
	TotalAuthors   int   `json:"total_authors" db:"total_authors"`
	TotalBlogs     int   `json:"total_blogs" db:"total_blogs"`
	PublishedBlogs int   `json:"published_blogs" db:"published_blogs"`
	FeaturedBlogs  int   `json:"featured_blogs" db:"featured_blogs"`
	TotalViews     int64 `json:"total_views" db:"total_views"`
	TotalLikes     int64 `json:"total_likes" db:"total_likes"`
}

// ========================================
// CONVERTERS
// ========================================

func (b *BlogWithAuthor) ToListingItem() ListingItem {
	return ListingItem{
		ID:      b.ID,
		Title:   b.Title,
		Content: b.Content,
		Date:    b.Date,
		Author:  b.Author.Name,
	}
}

// ToAPIItem shortens content to APIContentPreview runes plus "..."
func (b *BlogWithAuthor) ToAPIItem() APIBlogItem {
	content := b.Content
	if len([]rune(content)) > APIContentPreview {
		content = utils.TruncateRunes(content, APIContentPreview) + "..."
	}

	return APIBlogItem{
		ID:      b.ID,
		Title:   b.Title,
		Content: content,
		Date:    b.Date,
		Author:  b.Author.ToSummary(),
	}
}

// ToResponse builds the detailed payload; includeContent=false leaves the body out
func (b *BlogWithAuthor) ToResponse(includeContent bool) BlogResponse {
	resp := BlogResponse{
		ID:             b.ID,
		Title:          b.Title,
		Slug:           b.Slug,
		Excerpt:        b.Excerpt,
		Date:           b.Date,
		FormattedDate:  b.DisplayDate(),
		Featured:       b.Featured,
		Published:      b.Published,
		ViewCount:      b.ViewCount,
		LikeCount:      b.LikeCount,
		WordCount:      b.WordCount(),
		CharacterCount: b.CharacterCount(),
		ReadingTime:    b.ReadingTime(),
		IsLongForm:     b.IsLongForm(),
		Author: AuthorCard{
			ID:            b.Author.ID,
			Name:          b.Author.Name,
			Email:         b.Author.Email,
			AvatarInitial: b.Author.AvatarInitial(),
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if includeContent {
		resp.Content = b.Content
	}
	return resp
}

func ToListing(blogs []BlogWithAuthor) ListingResponse {
	items := make([]ListingItem, 0, len(blogs))
	for i := range blogs {
		items = append(items, blogs[i].ToListingItem())
	}
	return ListingResponse{Blogs: items}
}

func ToAPIBlogs(blogs []BlogWithAuthor) APIBlogsResponse {
	items := make([]APIBlogItem, 0, len(blogs))
	for i := range blogs {
		items = append(items, blogs[i].ToAPIItem())
	}
	return APIBlogsResponse{Success: true, Blogs: items}
}

func ToResponses(blogs []BlogWithAuthor, includeContent bool) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, blogs[i].ToResponse(includeContent))
	}
	return out
}
