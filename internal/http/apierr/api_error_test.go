package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/http/apierr"
	"github.com/invenhq/inventory-api/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map domain errors to their status codes", func(t *testing.T) {
		tests := []struct {
			err        error
			statusCode int
			code       string
		}{
			{apperr.ProductNotFoundErr, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
			{apperr.EmailConflictErr, http.StatusConflict, "EMAIL_ALREADY_EXISTS"},
			{apperr.InvalidCredentialsErr, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
			{apperr.NewInsufficientStock("Widget", 2, 5), http.StatusBadRequest, "INSUFFICIENT_STOCK"},
			{apperr.ValidationErr, http.StatusBadRequest, "VALIDATION_FAILED"},
		}

		for _, tt := range tests {
			res := apierr.New(tt.err)
			assert.Equal(t, tt.statusCode, res.StatusCode)
			assert.Equal(t, tt.code, res.Code)
		}
	})

	t.Run("Should map wrapped domain errors", func(t *testing.T) {
		wrapped := fmt.Errorf("transaction service: %w", apperr.CategoryInUseErr)

		res := apierr.New(wrapped)
		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, "CATEGORY_IN_USE", res.Code)
	})

	t.Run("Should carry field details for validation errors", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type req struct {
			Email string `validate:"required,email"`
		}
		vErr := v.Validate(req{})
		require.Error(t, vErr)

		res := apierr.New(vErr)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", res.Code)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Email", (*res.Details)[0].Field)
	})

	t.Run("Should hide unknown errors behind a 500", func(t *testing.T) {
		res := apierr.New(errors.New("pq: connection reset"))
		assert.Equal(t, apierr.InternalServerErr, res)
	})
}
