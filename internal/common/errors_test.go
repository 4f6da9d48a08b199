// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrNotFound.WithDetails("Vendor xyz does not exist.")

	assert.Equal(t, "Vendor xyz does not exist.", detailed.Details)
	assert.Nil(t, ErrNotFound.Details, "sentinel must stay detail-free")
	assert.Equal(t, ErrNotFound.Code, detailed.Code)
	assert.Equal(t, ErrNotFound.StatusCode, detailed.StatusCode)
}

func TestErrorsIsMatchesDetailedCopies(t *testing.T) {
	detailed := ErrConflict.WithDetails("Role selection is only valid while the session awaits a role.")
	assert.ErrorIs(t, detailed, ErrConflict)
	assert.NotErrorIs(t, detailed, ErrNotFound)

	wrapped := fmt.Errorf("handling request: %w", detailed)
	assert.ErrorIs(t, wrapped, ErrConflict)
}

func TestIsAPIError(t *testing.T) {
	apiErr, ok := IsAPIError(ErrForbidden.WithDetails("nope"))
	assert.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)

	_, ok = IsAPIError(errors.New("plain"))
	assert.False(t, ok)
}
