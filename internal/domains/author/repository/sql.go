package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"blog-backend/internal/domains/author/model"
	infradb "blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/database"
)

var authorColumns = []string{"id", "name", "email", "bio", "avatar_url", "created_at", "updated_at"}

// sqlRepository implements RepositoryInterface on top of sqlx.
// Statements are built with squirrel so the same code serves PostgreSQL and SQLite.
type sqlRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

// NewSQLRepository creates a new author repository instance
func NewSQLRepository(db *sqlx.DB, dialect infradb.Dialect) RepositoryInterface {
	return &sqlRepository{
		db:      db,
		builder: dialect.Builder(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// READ
// ========================================

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return r.getOne(ctx, r.db, sq.Eq{"id": id})
}

func (r *sqlRepository) GetByEmail(ctx context.Context, q database.Querier, email string) (*model.Author, error) {
	return r.getOne(ctx, q, sq.Eq{"email": model.NormalizeEmail(email)})
}

func (r *sqlRepository) getOne(ctx context.Context, q database.Querier, where sq.Eq) (*model.Author, error) {
	query, args, err := r.builder.
		Select(authorColumns...).
		From("authors").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build author query: %w", err)
	}

	var a model.Author
	if err := sqlx.GetContext(ctx, q, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return &a, nil
}

func (r *sqlRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").From("authors").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return count, nil
}

func (r *sqlRepository) BlogCount(ctx context.Context, id int64) (int, error) {
	query, args, err := r.builder.
		Select("COUNT(*)").
		From("blogs").
		Where(sq.Eq{"author_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build blog count query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return count, nil
}

func (r *sqlRepository) ListBlogRefs(ctx context.Context, id int64) ([]model.BlogRef, error) {
	query, args, err := r.builder.
		Select("id", "title", "slug", "date", "created_at").
		From("blogs").
		Where(sq.Eq{"author_id": id}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blog refs query: %w", err)
	}

	refs := make([]model.BlogRef, 0)
	if err := r.db.SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	return refs, nil
}

// ========================================
// WRITE
// ========================================

// Create inserts a and sets its ID and timestamps
func (r *sqlRepository) Create(ctx context.Context, q database.Querier, a *model.Author) error {
	now := r.now()

	query, args, err := r.builder.
		Insert("authors").
		Columns("name", "email", "bio", "avatar_url", "created_at", "updated_at").
		Values(a.Name, a.Email, a.Bio, a.AvatarURL, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert author: %w", err)
	}

	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if infradb.IsUniqueViolationOn(err, "email") {
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	a.ID = id
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

func (r *sqlRepository) UpdateName(ctx context.Context, q database.Querier, id int64, name string) error {
	query, args, err := r.builder.
		Update("authors").
		Set("name", name).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update author: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

// UpsertByEmail looks the author up by email. An existing author keeps its ID and
// takes the new name when it differs; otherwise a new author is inserted.
// A concurrent insert of the same email surfaces as ErrDuplicateEmail.
func (r *sqlRepository) UpsertByEmail(ctx context.Context, q database.Querier, name, email string) (*model.Author, error) {
	name = strings.TrimSpace(name)

	existing, err := r.GetByEmail(ctx, q, email)
	switch {
	case err == nil:
		if existing.Name != name {
			if err := model.ValidateName(name); err != nil {
				return nil, err
			}
			if err := r.UpdateName(ctx, q, existing.ID, name); err != nil {
				return nil, err
			}
			existing.Name = name
			existing.UpdatedAt = r.now()
		}
		return existing, nil
	case !errors.Is(err, model.ErrAuthorNotFound):
		return nil, err
	}

	a, err := model.NewAuthor(name, email, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := r.Create(ctx, q, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete author: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	if n == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}
