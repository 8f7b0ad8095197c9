package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultConflictAttempts is how many times a unit of work is tried
// when it keeps losing a uniqueness race
const DefaultConflictAttempts = 3

// RetryOnConflict runs fn until it succeeds, fails with an error that
// isConflict rejects, or attempts run out. The last error is returned as is
// so callers can still match it with errors.Is.
func RetryOnConflict(ctx context.Context, attempts int, isConflict func(error) bool, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("retry cancelled: %w", ctxErr)
		}

		err = fn()
		if err == nil || !isConflict(err) {
			return err
		}

		log.Debug().Err(err).Int("attempt", attempt).Int("max", attempts).Msg("[DATABASE] Conflict, retrying unit of work")
	}
	return err
}
