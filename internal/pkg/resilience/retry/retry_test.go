package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	fast := func(attempts uint) Retry {
		return New(
			WithAttempts(attempts),
			WithDelay(time.Millisecond),
			WithMaxDelay(5*time.Millisecond),
		)
	}

	t.Run("returns immediately on success", func(t *testing.T) {
		calls := 0
		err := fast(3).Execute(t.Context(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until the operation succeeds", func(t *testing.T) {
		calls := 0
		err := fast(5).Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("spends the attempt budget and reports the last error", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("attempt 3")
		err := fast(3).Execute(t.Context(), func() error {
			calls++
			if calls == 3 {
				return lastErr
			}
			return errors.New("earlier")
		})
		assert.ErrorIs(t, err, lastErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		calls := 0
		err := New(WithAttempts(100), WithDelay(10*time.Millisecond)).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("keep going")
		})
		assert.Error(t, err)
		assert.Less(t, calls, 100)
	})
}
