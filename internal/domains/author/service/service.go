package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
	"blog-backend/pkg/database"
)

type authorService struct {
	db   *sqlx.DB
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(db *sqlx.DB, repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		db:   db,
		repo: repo,
	}
}

func (s *authorService) GetOrCreate(ctx context.Context, req model.GetOrCreateAuthorRequest) (*model.Author, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	candidate, err := model.NewAuthor(req.Name, req.Email, req.Bio, req.AvatarURL)
	if err != nil {
		return nil, false, err
	}

	var (
		result  *model.Author
		created bool
	)

	isConflict := func(err error) bool { return errors.Is(err, model.ErrDuplicateEmail) }

	err = database.RetryOnConflict(ctx, database.DefaultConflictAttempts, isConflict, func() error {
		return database.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
			existing, err := s.repo.GetByEmail(ctx, tx, candidate.Email)
			if err == nil {
				if existing.Name != candidate.Name {
					if err := model.ValidateName(candidate.Name); err != nil {
						return err
					}
					if err := s.repo.UpdateName(ctx, tx, existing.ID, candidate.Name); err != nil {
						return err
					}
					existing.Name = candidate.Name
				}
				result, created = existing, false
				return nil
			}
			if !errors.Is(err, model.ErrAuthorNotFound) {
				return err
			}

			fresh := *candidate
			if err := s.repo.Create(ctx, tx, &fresh); err != nil {
				return err
			}
			result, created = &fresh, true
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, model.ErrDuplicateEmail) {
			log.Error().Err(err).Str("email", candidate.Email).Msg("Failed to get or create author")
		}
		return nil, false, err
	}

	return result, created, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetProfile(ctx context.Context, id int64) (*model.AuthorProfileResponse, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.BlogCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count author blogs: %w", err)
	}

	refs, err := s.repo.ListBlogRefs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list author blogs: %w", err)
	}

	profile := &model.AuthorProfileResponse{
		AuthorResponse: a.ToResponse(),
		BlogCount:      count,
		Blogs:          refs,
	}
	if len(refs) > 0 {
		latest := refs[0]
		profile.LatestBlog = &latest
	}

	return profile, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrAuthorNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("author_id", id).Msg("Author deleted with all blogs")
	return nil
}
