package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invenhq/inventory-api/pkg/zerror"
)

func TestZError(t *testing.T) {
	base := zerror.NewNotFound("THING_NOT_FOUND", "thing not found")

	t.Run("Should expose status, code and message", func(t *testing.T) {
		assert.Equal(t, zerror.StatusNotFound, base.Status())
		assert.Equal(t, "THING_NOT_FOUND", base.Code())
		assert.Equal(t, "thing not found", base.Msg())
	})

	t.Run("Should match itself through errors.Is after wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("service call: %w", base)
		assert.ErrorIs(t, wrapped, base)
	})

	t.Run("Should carry a parent error", func(t *testing.T) {
		parent := errors.New("row scan failed")
		withParent := base.WrapParent(parent)

		assert.Contains(t, withParent.Error(), "row scan failed")
		assert.Equal(t, base.Code(), withParent.Code())
	})

	t.Run("Should replace the message without mutating the original", func(t *testing.T) {
		detailed := base.WithMsg("thing 42 not found")

		assert.Equal(t, "thing 42 not found", detailed.Msg())
		assert.Equal(t, "thing not found", base.Msg())
	})

	t.Run("Should be extractable with errors.As", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", base)

		var zErr zerror.ZError
		assert.ErrorAs(t, wrapped, &zErr)
		assert.Equal(t, "THING_NOT_FOUND", zErr.Code())
	})
}
