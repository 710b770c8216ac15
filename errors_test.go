package followthemoney

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelError(t *testing.T) {
	err := NewModelError("Company", "nope", "missing featured property")
	assert.Equal(t, `followthemoney: model error on schema Company: missing featured property "nope"`, err.Error())
	assert.True(t, IsModelError(err))
	assert.True(t, errors.Is(err, ErrInvalidModel))
	assert.False(t, errors.Is(err, ErrInvalidData))
	assert.False(t, IsValidationError(err))
}

func TestModelErrorWrapping(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := &ModelError{Message: "cannot parse thing.yaml", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cannot parse thing.yaml")
	assert.Contains(t, err.Error(), cause.Error())

	wrapped := fmt.Errorf("loading model: %w", err)
	assert.True(t, IsModelError(wrapped))
}

func TestValidationErrorAggregate(t *testing.T) {
	require := require.New(t)
	err := NewValidationError("Person", map[string]string{
		"name":      "Required",
		"birthDate": "Invalid value",
	})
	require.True(IsValidationError(err))
	require.True(errors.Is(err, ErrInvalidData))
	require.False(IsModelError(err))

	// Sorted, one line per offending property.
	require.Equal("followthemoney: entity validation failed for schema Person"+
		"\n  birthDate: Invalid value"+
		"\n  name: Required", err.Error())

	var verr *ValidationError
	require.ErrorAs(fmt.Errorf("ingest: %w", err), &verr)
	require.Len(verr.Properties, 2)
}

func TestIsHelpersNil(t *testing.T) {
	assert.False(t, IsModelError(nil))
	assert.False(t, IsValidationError(nil))
}
