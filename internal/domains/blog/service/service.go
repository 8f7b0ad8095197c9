package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	authormodel "blog-backend/internal/domains/author/model"
	authorrepo "blog-backend/internal/domains/author/repository"
	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/internal/shared/apperr"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/database"
)

// maxSlugSuffix bounds the base-2, base-3, ... search for a free slug
const maxSlugSuffix = 1000

// Limits are the default sizes of the accessor queries
type Limits struct {
	Home     int
	Featured int
	Recent   int
	Popular  int
}

// DefaultLimits mirrors the sizes used by the web pages
func DefaultLimits() Limits {
	return Limits{
		Home:     model.HomeRecentLimit,
		Featured: model.DefaultFeaturedLimit,
		Recent:   model.DefaultRecentLimit,
		Popular:  model.DefaultPopularLimit,
	}
}

type blogService struct {
	db      *sqlx.DB
	blogs   repository.RepositoryInterface
	authors authorrepo.RepositoryInterface
	limits  Limits
}

// NewBlogService creates a new blog service instance
func NewBlogService(
	db *sqlx.DB,
	blogs repository.RepositoryInterface,
	authors authorrepo.RepositoryInterface,
	limits Limits,
) ServiceInterface {
	return &blogService{
		db:      db,
		blogs:   blogs,
		authors: authors,
		limits:  limits,
	}
}

// ═══════════════════════════════════════════════════════════
// PUBLISH
// ═══════════════════════════════════════════════════════════

func (s *blogService) Publish(ctx context.Context, req model.PublishBlogRequest) (*model.BlogWithAuthor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Trimmed()

	date, ok := model.NormalizeDate(req.Date)
	if !ok {
		return nil, apperr.NewValidationError("Please provide a valid date.")
	}

	var result *model.BlogWithAuthor

	err := database.RetryOnConflict(ctx, database.DefaultConflictAttempts, isUniquenessConflict, func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
			author, err := s.authors.UpsertByEmail(ctx, tx, req.AuthorName, req.AuthorEmail)
			if err != nil {
				return err
			}

			blog, err := model.NewBlog(model.NewBlogParams{
				Title:    req.Title,
				Content:  req.Content,
				Date:     date,
				Excerpt:  req.Excerpt,
				Featured: req.Featured,
				AuthorID: author.ID,
			})
			if err != nil {
				return err
			}

			slug, err := s.resolveSlug(ctx, tx, blog.Slug)
			if err != nil {
				return err
			}
			blog.Slug = slug

			if err := s.blogs.Create(ctx, tx, blog); err != nil {
				return err
			}

			result = &model.BlogWithAuthor{Blog: *blog, Author: *author}
			return nil
		})
	})

	switch {
	case err == nil:
		log.Info().
			Int64("blog_id", result.ID).
			Int64("author_id", result.Author.ID).
			Str("slug", result.Slug).
			Msg("Blog published")
		return result, nil
	case errors.Is(err, model.ErrDuplicateSlug):
		return nil, apperr.NewValidationError(model.MsgDuplicateTitle)
	case errors.Is(err, authormodel.ErrDuplicateEmail):
		return nil, apperr.NewValidationError(model.MsgDuplicateEmail)
	case errors.Is(err, apperr.ErrValidation):
		return nil, err
	default:
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to publish blog")
		return nil, fmt.Errorf("%w: %v", model.ErrPublishFailed, err)
	}
}

func isUniquenessConflict(err error) bool {
	return errors.Is(err, model.ErrDuplicateSlug) || errors.Is(err, authormodel.ErrDuplicateEmail)
}

// resolveSlug returns base when free, else the first free base-2, base-3, ...
// It reads inside the publish transaction; a writer racing past it is caught by
// the unique constraint and the whole unit is retried.
func (s *blogService) resolveSlug(ctx context.Context, q database.Querier, base string) (string, error) {
	taken := make(map[string]bool)
	loaded := make(map[string]bool)

	load := func(prefix string) error {
		if loaded[prefix] {
			return nil
		}
		slugs, err := s.blogs.SlugsWithPrefix(ctx, q, prefix)
		if err != nil {
			return err
		}
		for _, slug := range slugs {
			taken[slug] = true
		}
		loaded[prefix] = true
		return nil
	}

	if err := load(base); err != nil {
		return "", err
	}
	if !taken[base] {
		return base, nil
	}

	for n := 2; n <= maxSlugSuffix; n++ {
		candidate := utils.SlugWithSuffix(base, n)
		// Long bases get shortened to make room for the suffix
		if err := load(strings.TrimSuffix(candidate, "-"+strconv.Itoa(n))); err != nil {
			return "", err
		}
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", model.ErrDuplicateSlug
}

// ═══════════════════════════════════════════════════════════
// READ
// ═══════════════════════════════════════════════════════════

func (s *blogService) GetByID(ctx context.Context, id int64) (*model.BlogWithAuthor, error) {
	if id <= 0 {
		return nil, model.ErrBlogNotFound
	}
	return s.blogs.GetByID(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrBlogNotFound
	}
	return s.blogs.GetBySlug(ctx, slug)
}

func (s *blogService) Detail(ctx context.Context, id int64) (*model.BlogWithAuthor, []model.BlogWithAuthor, error) {
	blog, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	related, err := s.blogs.Related(ctx, &blog.Blog, model.DefaultRelatedSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load related blogs: %w", err)
	}

	return blog, related, nil
}

func (s *blogService) List(ctx context.Context, filter model.ListFilter) ([]model.BlogWithAuthor, error) {
	filter.Sort = model.ParseSort(string(filter.Sort))
	filter.Search = strings.TrimSpace(filter.Search)
	return s.blogs.List(ctx, filter)
}

func (s *blogService) Search(ctx context.Context, term string) ([]model.BlogWithAuthor, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, model.ErrEmptySearch
	}
	return s.blogs.Search(ctx, term)
}

func (s *blogService) Home(ctx context.Context) ([]model.BlogWithAuthor, []model.BlogWithAuthor, error) {
	recent, err := s.blogs.List(ctx, model.ListFilter{
		Sort:  model.SortNewest,
		Limit: uint64(model.ResolveLimit(s.limits.Home, model.HomeRecentLimit)),
	})
	if err != nil {
		return nil, nil, err
	}

	featured, err := s.blogs.Featured(ctx, s.limits.Featured)
	if err != nil {
		return nil, nil, err
	}

	return recent, featured, nil
}

func (s *blogService) Featured(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	return s.blogs.Featured(ctx, model.ResolveLimit(limit, s.limits.Featured))
}

func (s *blogService) Recent(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	return s.blogs.Recent(ctx, model.ResolveLimit(limit, s.limits.Recent))
}

func (s *blogService) Popular(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	return s.blogs.Popular(ctx, model.ResolveLimit(limit, s.limits.Popular))
}

func (s *blogService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.blogs.Stats(ctx)
}

// ═══════════════════════════════════════════════════════════
// COUNTERS
// ═══════════════════════════════════════════════════════════

func (s *blogService) RecordView(ctx context.Context, id int64) (*model.Counters, error) {
	return s.updateCounter(ctx, id, s.blogs.IncrementViewCount)
}

func (s *blogService) Like(ctx context.Context, id int64) (*model.Counters, error) {
	return s.updateCounter(ctx, id, s.blogs.IncrementLikeCount)
}

func (s *blogService) Unlike(ctx context.Context, id int64) (*model.Counters, error) {
	return s.updateCounter(ctx, id, s.blogs.DecrementLikeCount)
}

type counterUpdate func(ctx context.Context, q database.Querier, id int64) error

func (s *blogService) updateCounter(ctx context.Context, id int64, update counterUpdate) (*model.Counters, error) {
	if id <= 0 {
		return nil, model.ErrBlogNotFound
	}

	return database.WithTransactionResult(ctx, s.db, func(tx *sqlx.Tx) (*model.Counters, error) {
		if err := update(ctx, tx, id); err != nil {
			return nil, err
		}
		return s.blogs.Counters(ctx, tx, id)
	})
}
