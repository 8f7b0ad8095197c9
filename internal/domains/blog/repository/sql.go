package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"blog-backend/internal/domains/blog/model"
	infradb "blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/database"
)

// sqlRepository implements RepositoryInterface on top of sqlx and squirrel
type sqlRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

// NewSQLRepository creates a new blog repository instance
func NewSQLRepository(db *sqlx.DB, dialect infradb.Dialect) RepositoryInterface {
	return &sqlRepository{
		db:      db,
		builder: dialect.Builder(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ============================================
// CREATE
// ============================================

func (r *sqlRepository) Create(ctx context.Context, q database.Querier, b *model.Blog) error {
	now := r.now()

	query, args, err := r.builder.
		Insert("blogs").
		Columns(
			"title", "content", "date", "slug", "excerpt",
			"featured", "published", "view_count", "like_count",
			"created_at", "updated_at", "author_id",
		).
		Values(
			b.Title, b.Content, b.Date, b.Slug, b.Excerpt,
			b.Featured, b.Published, b.ViewCount, b.LikeCount,
			now, now, b.AuthorID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert blog: %w", err)
	}

	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if infradb.IsUniqueViolationOn(err, "slug") {
			return model.ErrDuplicateSlug
		}
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// ============================================
// READ
// ============================================

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.BlogWithAuthor, error) {
	return r.getOne(ctx, sq.Eq{"b.id": id})
}

func (r *sqlRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error) {
	return r.getOne(ctx, sq.Eq{"b.slug": slug})
}

func (r *sqlRepository) getOne(ctx context.Context, where sq.Sqlizer) (*model.BlogWithAuthor, error) {
	query, args, err := selectBlogs(r.builder).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blog query: %w", err)
	}

	var b model.BlogWithAuthor
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return &b, nil
}

func (r *sqlRepository) List(ctx context.Context, filter model.ListFilter) ([]model.BlogWithAuthor, error) {
	return r.selectMany(ctx, BuildListQuery(r.builder, filter))
}

func (r *sqlRepository) Search(ctx context.Context, term string) ([]model.BlogWithAuthor, error) {
	return r.List(ctx, model.ListFilter{Search: term, Sort: model.SortNewest})
}

func (r *sqlRepository) Related(ctx context.Context, blog *model.Blog, limit int) ([]model.BlogWithAuthor, error) {
	limit = model.ResolveLimit(limit, model.DefaultRelatedSize)

	return r.selectMany(ctx, selectBlogs(r.builder).
		Where(sq.Eq{"b.author_id": blog.AuthorID}).
		Where(sq.NotEq{"b.id": blog.ID}).
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(limit)))
}

func (r *sqlRepository) Featured(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	limit = model.ResolveLimit(limit, model.DefaultFeaturedLimit)

	return r.selectMany(ctx, selectBlogs(r.builder).
		Where(sq.Eq{"b.published": true, "b.featured": true}).
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(limit)))
}

func (r *sqlRepository) Recent(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	limit = model.ResolveLimit(limit, model.DefaultRecentLimit)

	return r.selectMany(ctx, selectBlogs(r.builder).
		Where(sq.Eq{"b.published": true}).
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(limit)))
}

func (r *sqlRepository) Popular(ctx context.Context, limit int) ([]model.BlogWithAuthor, error) {
	limit = model.ResolveLimit(limit, model.DefaultPopularLimit)

	return r.selectMany(ctx, selectBlogs(r.builder).
		Where(sq.Eq{"b.published": true}).
		OrderBy("b.view_count DESC", "b.id DESC").
		Limit(uint64(limit)))
}

func (r *sqlRepository) selectMany(ctx context.Context, builder sq.SelectBuilder) ([]model.BlogWithAuthor, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blog list query: %w", err)
	}

	blogs := make([]model.BlogWithAuthor, 0)
	if err := r.db.SelectContext(ctx, &blogs, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return blogs, nil
}

func (r *sqlRepository) SlugsWithPrefix(ctx context.Context, q database.Querier, prefix string) ([]string, error) {
	query, args, err := r.builder.
		Select("slug").
		From("blogs").
		Where(sq.Or{
			sq.Eq{"slug": prefix},
			sq.Expr(`slug LIKE ? ESCAPE '\'`, escapeLike(prefix)+"-%"),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slug query: %w", err)
	}

	slugs := make([]string, 0)
	if err := sqlx.SelectContext(ctx, q, &slugs, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return slugs, nil
}

// ============================================
// COUNTERS
// ============================================

func (r *sqlRepository) IncrementViewCount(ctx context.Context, q database.Querier, id int64) error {
	return r.bumpCounter(ctx, q, id, "view_count", "view_count + 1", nil)
}

func (r *sqlRepository) IncrementLikeCount(ctx context.Context, q database.Querier, id int64) error {
	return r.bumpCounter(ctx, q, id, "like_count", "like_count + 1", nil)
}

func (r *sqlRepository) DecrementLikeCount(ctx context.Context, q database.Querier, id int64) error {
	return r.bumpCounter(ctx, q, id, "like_count", "like_count - 1", sq.Gt{"like_count": 0})
}

// bumpCounter runs a single UPDATE on one counter column.
// When no row changes, the blog is either missing (ErrBlogNotFound) or the
// guard held it back, which is not an error.
func (r *sqlRepository) bumpCounter(ctx context.Context, q database.Querier, id int64, column, expr string, guard sq.Sqlizer) error {
	update := r.builder.
		Update("blogs").
		Set(column, sq.Expr(expr)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id})
	if guard != nil {
		update = update.Where(guard)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build counter update: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.Counters(ctx, q, id)
	return err
}

func (r *sqlRepository) Counters(ctx context.Context, q database.Querier, id int64) (*model.Counters, error) {
	query, args, err := r.builder.
		Select("id", "view_count", "like_count").
		From("blogs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build counters query: %w", err)
	}

	var c model.Counters
	if err := sqlx.GetContext(ctx, q, &c, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return &c, nil
}

// ============================================
// STATS
// ============================================

func (r *sqlRepository) Stats(ctx context.Context) (*model.Stats, error) {
	query, args, err := r.builder.
		Select(
			"CAST((SELECT COUNT(*) FROM authors) AS BIGINT) AS total_authors",
			"CAST(COUNT(*) AS BIGINT) AS total_blogs",
			"CAST(COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0) AS BIGINT) AS published_blogs",
			"CAST(COALESCE(SUM(CASE WHEN featured THEN 1 ELSE 0 END), 0) AS BIGINT) AS featured_blogs",
			"CAST(COALESCE(SUM(view_count), 0) AS BIGINT) AS total_views",
			"CAST(COALESCE(SUM(like_count), 0) AS BIGINT) AS total_likes",
		).
		From("blogs").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return &stats, nil
}
