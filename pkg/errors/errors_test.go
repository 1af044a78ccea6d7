package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/caretrack/patientflow/backend/pkg/errors"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := apperrors.NewNotFoundError("patient not found")
		assert.Equal(t, apperrors.ErrorTypeNotFound, err.Type)
		assert.Equal(t, "NOT_FOUND: patient not found", err.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := apperrors.NewExternalError("failed to connect to Redis", cause)
		assert.Equal(t, apperrors.ErrorTypeExternal, err.Type)
		assert.Equal(t, "EXTERNAL: failed to connect to Redis: connection refused", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestAppError_Constructors(t *testing.T) {
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.NewValidationError("bad input").Type)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.NewInternalError("boom", nil).Type)
}
