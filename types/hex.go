// Package types defines the value types exchanged with a Thor-style chain
// node: fixed-length hex identifiers, hex quantities, and the block,
// transaction, receipt and log shapes returned by the node API.
//
// All identifiers are rendered at the boundary as fixed-length hex strings
// with a "0x" prefix, and validated on the way in.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Bytes32 is a 32-byte value (block id, transaction id, storage key, topic).
type Bytes32 [32]byte

// Address is a 20-byte account address.
type Address [20]byte

// HexData is an arbitrary-length byte payload rendered as 0x-prefixed hex.
type HexData []byte

// Quantity is an unsigned integer amount (balance, energy, transfer value)
// rendered as a 0x-prefixed hex string. It is string-backed so values larger
// than 64 bits survive a JSON round-trip unchanged.
type Quantity string

// decodeHex strips the 0x prefix and decodes the remainder, enforcing an
// exact byte length when want >= 0.
func decodeHex(s string, want int) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("hex string must start with 0x")
	}

	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	if want >= 0 && len(b) != want {
		return nil, fmt.Errorf("expected %d bytes, got %d", want, len(b))
	}
	return b, nil
}

// ParseBytes32 parses a 0x-prefixed 64-digit hex string.
func ParseBytes32(s string) (Bytes32, error) {
	var v Bytes32
	b, err := decodeHex(s, 32)
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}

// MustParseBytes32 is ParseBytes32 that panics on malformed input.
// Intended for tests and literals.
func MustParseBytes32(s string) Bytes32 {
	v, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Bytes32) String() string { return "0x" + hex.EncodeToString(v[:]) }

// IsZero reports whether the value is all zero bytes.
func (v Bytes32) IsZero() bool { return v == Bytes32{} }

// Number interprets the first 4 bytes as a big-endian block number. Thor-style
// block ids embed the height of the block in their leading bytes.
func (v Bytes32) Number() uint32 {
	return uint32(v[0])<<24 | uint32(v[1])<<16 | uint32(v[2])<<8 | uint32(v[3])
}

func (v Bytes32) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Bytes32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid bytes32: %w", err)
	}

	parsed, err := ParseBytes32(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// ParseAddress parses a 0x-prefixed 40-digit hex string.
func ParseAddress(s string) (Address, error) {
	var a Address
	b, err := decodeHex(s, 20)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// MustParseAddress is ParseAddress that panics on malformed input.
// Intended for tests and literals.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool { return a == Address{} }

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// ParseHexData parses a 0x-prefixed hex string of any even length.
func ParseHexData(s string) (HexData, error) {
	b, err := decodeHex(s, -1)
	if err != nil {
		return nil, err
	}
	return HexData(b), nil
}

func (d HexData) String() string { return "0x" + hex.EncodeToString(d) }

func (d HexData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *HexData) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}

	parsed, err := ParseHexData(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// ParseQuantity validates a 0x-prefixed hex quantity.
func ParseQuantity(s string) (Quantity, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("hex quantity must start with 0x")
	}

	if _, ok := new(big.Int).SetString(s[2:], 16); !ok {
		return "", fmt.Errorf("invalid hex quantity %q", s)
	}
	return Quantity(s), nil
}

// QuantityFromBig renders a big integer as a hex quantity.
// Negative values are not representable and yield "0x0".
func QuantityFromBig(v *big.Int) Quantity {
	if v == nil || v.Sign() < 0 {
		return "0x0"
	}
	return Quantity("0x" + v.Text(16))
}

// Big decodes the quantity into a big integer. Malformed values decode to zero.
func (q Quantity) Big() *big.Int {
	s := string(q)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return new(big.Int)
	}
	return v
}

func (q Quantity) String() string { return string(q) }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex quantity: %w", err)
	}

	parsed, err := ParseQuantity(s)
	if err != nil {
		return err
	}

	*q = parsed
	return nil
}
