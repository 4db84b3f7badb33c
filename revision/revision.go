// Package revision models a reference to a point in chain history: a block
// id, a block height, or one of the moving sentinels "best" and "finalized".
//
// A Revision is validated locally at construction and never contacts the
// node; turning it into an actual block happens later, at visitor Get time.
package revision

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vireolabs/thorlink/types"
)

// ErrInvalid is returned when a revision is malformed: a negative or
// non-integral number, or a string that is neither a 32-byte hex id, a
// decimal height, nor a known sentinel.
var ErrInvalid = errors.New("revision: invalid revision")

type kind uint8

const (
	kindBest kind = iota
	kindFinalized
	kindID
	kindNumber
)

// Revision identifies a point in chain history. The zero value is "best".
// Once attached to a visitor a Revision is never re-resolved; constructing a
// new visitor is the only way to re-anchor.
type Revision struct {
	kind   kind
	id     types.Bytes32
	number uint32
}

// Best refers to the current chain head.
func Best() Revision { return Revision{kind: kindBest} }

// Finalized refers to the latest finalized block.
func Finalized() Revision { return Revision{kind: kindFinalized} }

// ID anchors the revision to a specific block id.
func ID(id types.Bytes32) Revision { return Revision{kind: kindID, id: id} }

// Number anchors the revision to a block height.
func Number(n uint32) Revision { return Revision{kind: kindNumber, number: n} }

// Parse interprets a user-supplied revision string. Accepted forms:
//
//   - "" or "best": the current head
//   - "finalized": the latest finalized block
//   - a 0x-prefixed 64-digit hex block id
//   - a non-negative decimal block height
//
// Anything else fails with ErrInvalid.
func Parse(s string) (Revision, error) {
	switch s {
	case "", "best":
		return Best(), nil
	case "finalized":
		return Finalized(), nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		id, err := types.ParseBytes32(s)
		if err != nil {
			return Revision{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
		}
		return ID(id), nil
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Revision{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Number(uint32(n)), nil
}

// IsBest reports whether the revision tracks the moving head.
func (r Revision) IsBest() bool { return r.kind == kindBest }

// IsFinalized reports whether the revision tracks the latest finalized block.
func (r Revision) IsFinalized() bool { return r.kind == kindFinalized }

// String renders the revision in the form the node's revision query
// parameter expects.
func (r Revision) String() string {
	switch r.kind {
	case kindFinalized:
		return "finalized"
	case kindID:
		return r.id.String()
	case kindNumber:
		return strconv.FormatUint(uint64(r.number), 10)
	default:
		return "best"
	}
}
