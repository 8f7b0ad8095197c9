package apperr

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("publish: %w", NewValidationError("Blog title is required."))

	assert.True(t, errors.Is(err, ErrValidation))

	msgs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Blog title is required."}, msgs)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed", NewValidationError().Error())
	assert.Equal(t, "a. b.", NewValidationError("a.", "b.").Error())
}

func TestFromOzzo_Ordering(t *testing.T) {
	errs := validation.Errors{
		"zeta":  errors.New("z"),
		"title": errors.New("title bad"),
		"alpha": errors.New("a"),
		"name":  errors.New("name bad"),
		"empty": nil,
	}

	err := FromOzzo(errs, "name", "title")
	msgs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name bad", "title bad", "a", "z"}, msgs)
}

func TestFromOzzo_PassThrough(t *testing.T) {
	assert.NoError(t, FromOzzo(nil))

	internal := errors.New("rule misconfigured")
	assert.Equal(t, internal, FromOzzo(internal))
}
