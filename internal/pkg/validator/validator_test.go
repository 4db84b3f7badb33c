package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type queryRange struct {
		Unit string `validate:"required,oneof=block time"`
		From uint64
		To   uint64
	}

	t.Run("a conforming struct passes", func(t *testing.T) {
		assert.NoError(t, Validate(queryRange{Unit: "block", From: 1, To: 2}))
		assert.NoError(t, Validate(queryRange{Unit: "time"}))
	})

	t.Run("a failing struct reports ErrValidationFailed", func(t *testing.T) {
		err := Validate(queryRange{Unit: "epoch"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "Unit")
	})

	t.Run("every failing field appears in the chain", func(t *testing.T) {
		type pair struct {
			A string `validate:"required"`
			B string `validate:"required"`
		}

		err := Validate(pair{})
		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "A")
		assert.Contains(t, err.Error(), "B")
	})
}
