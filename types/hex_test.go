package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes32(t *testing.T) {
	t.Run("parses a well-formed 32-byte id", func(t *testing.T) {
		s := "0x00003e9000000000000000000000000000000000000000000000000000abcdef"

		v, err := ParseBytes32(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	})

	t.Run("rejects a value without the 0x prefix", func(t *testing.T) {
		_, err := ParseBytes32("00003e9000000000000000000000000000000000000000000000000000abcdef")
		assert.Error(t, err)
	})

	t.Run("rejects a value of the wrong length", func(t *testing.T) {
		_, err := ParseBytes32("0xabcdef")
		assert.Error(t, err)
	})

	t.Run("rejects non-hex digits", func(t *testing.T) {
		_, err := ParseBytes32("0x00003e90000000000000000000000000000000000000000000000000g0abcde")
		assert.Error(t, err)
	})
}

func TestBytes32_Number(t *testing.T) {
	t.Run("extracts the block height from the leading bytes", func(t *testing.T) {
		id := MustParseBytes32("0x00003e9000000000000000000000000000000000000000000000000000abcdef")
		assert.Equal(t, uint32(0x3e90), id.Number())
	})
}

func TestBytes32_JSON(t *testing.T) {
	t.Run("round-trips through JSON unchanged", func(t *testing.T) {
		id := MustParseBytes32("0x00003e9000000000000000000000000000000000000000000000000000abcdef")

		data, err := json.Marshal(id)
		require.NoError(t, err)

		var decoded Bytes32
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, id, decoded)
	})

	t.Run("rejects malformed JSON values", func(t *testing.T) {
		var decoded Bytes32
		assert.Error(t, json.Unmarshal([]byte(`"0x1234"`), &decoded))
	})
}

func TestParseAddress(t *testing.T) {
	t.Run("parses a well-formed 20-byte address", func(t *testing.T) {
		s := "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"

		a, err := ParseAddress(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.String())
		assert.False(t, a.IsZero())
	})

	t.Run("rejects a 32-byte value", func(t *testing.T) {
		_, err := ParseAddress("0x00003e9000000000000000000000000000000000000000000000000000abcdef")
		assert.Error(t, err)
	})
}

func TestQuantity(t *testing.T) {
	t.Run("decodes small values", func(t *testing.T) {
		q, err := ParseQuantity("0x10")
		require.NoError(t, err)
		assert.Equal(t, int64(16), q.Big().Int64())
	})

	t.Run("survives a JSON round-trip for values beyond 64 bits", func(t *testing.T) {
		const s = `"0xde0b6b3a76400000000000000"`

		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(s), &q))

		expected, ok := new(big.Int).SetString("de0b6b3a76400000000000000", 16)
		require.True(t, ok)
		assert.Equal(t, 0, expected.Cmp(q.Big()))

		data, err := json.Marshal(q)
		require.NoError(t, err)
		assert.Equal(t, s, string(data))
	})

	t.Run("rejects values without the 0x prefix", func(t *testing.T) {
		_, err := ParseQuantity("10")
		assert.Error(t, err)
	})

	t.Run("renders big integers", func(t *testing.T) {
		assert.Equal(t, Quantity("0x10"), QuantityFromBig(big.NewInt(16)))
		assert.Equal(t, Quantity("0x0"), QuantityFromBig(nil))
	})
}

func TestHexData_JSON(t *testing.T) {
	t.Run("round-trips arbitrary payloads", func(t *testing.T) {
		d, err := ParseHexData("0xdeadbeef")
		require.NoError(t, err)

		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"0xdeadbeef"`, string(data))

		var decoded HexData
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, d, decoded)
	})
}

func TestEventCriteria_WithTopic(t *testing.T) {
	t.Run("sets each positional topic", func(t *testing.T) {
		topic := MustParseBytes32("0x00003e9000000000000000000000000000000000000000000000000000abcdef")

		c := EventCriteria{}
		c = c.WithTopic(0, topic).WithTopic(2, topic)

		require.NotNil(t, c.Topic0)
		assert.Equal(t, topic, *c.Topic0)
		assert.Nil(t, c.Topic1)
		require.NotNil(t, c.Topic2)
		assert.Equal(t, topic, *c.Topic2)
	})

	t.Run("ignores out-of-range positions", func(t *testing.T) {
		topic := MustParseBytes32("0x00003e9000000000000000000000000000000000000000000000000000abcdef")

		c := EventCriteria{}.WithTopic(5, topic)
		assert.Equal(t, EventCriteria{}, c)
	})
}
