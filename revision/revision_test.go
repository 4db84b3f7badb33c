package revision

import (
	"errors"
	"testing"

	"github.com/vireolabs/thorlink/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty string means best", func(t *testing.T) {
		rev, err := Parse("")
		require.NoError(t, err)
		assert.True(t, rev.IsBest())
		assert.Equal(t, "best", rev.String())
	})

	t.Run("best sentinel", func(t *testing.T) {
		rev, err := Parse("best")
		require.NoError(t, err)
		assert.True(t, rev.IsBest())
	})

	t.Run("finalized sentinel", func(t *testing.T) {
		rev, err := Parse("finalized")
		require.NoError(t, err)
		assert.True(t, rev.IsFinalized())
		assert.Equal(t, "finalized", rev.String())
	})

	t.Run("block id", func(t *testing.T) {
		const s = "0x00003e9000000000000000000000000000000000000000000000000000abcdef"

		rev, err := Parse(s)
		require.NoError(t, err)
		assert.False(t, rev.IsBest())
		assert.Equal(t, s, rev.String())
	})

	t.Run("decimal height", func(t *testing.T) {
		rev, err := Parse("123456")
		require.NoError(t, err)
		assert.Equal(t, "123456", rev.String())
	})

	t.Run("negative height fails with ErrInvalid", func(t *testing.T) {
		_, err := Parse("-1")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("non-integral height fails with ErrInvalid", func(t *testing.T) {
		_, err := Parse("1.5")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("short hex id fails with ErrInvalid", func(t *testing.T) {
		_, err := Parse("0xabc")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("arbitrary text fails with ErrInvalid", func(t *testing.T) {
		_, err := Parse("latest")
		assert.ErrorIs(t, err, ErrInvalid)
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	t.Run("height beyond 32 bits fails with ErrInvalid", func(t *testing.T) {
		_, err := Parse("99999999999")
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestConstructors(t *testing.T) {
	t.Run("zero value is best", func(t *testing.T) {
		var rev Revision
		assert.True(t, rev.IsBest())
	})

	t.Run("id constructor renders the full hex id", func(t *testing.T) {
		id := types.MustParseBytes32("0x00003e9000000000000000000000000000000000000000000000000000abcdef")
		assert.Equal(t, id.String(), ID(id).String())
	})

	t.Run("number constructor renders decimal", func(t *testing.T) {
		assert.Equal(t, "42", Number(42).String())
	})
}
