// Package codec declares the ABI codec consumed by method and event
// bindings. Encoding and decoding of contract method and event signatures is
// delegated entirely to an external implementation; this package owns only
// the contract and the error taxonomy.
package codec

import (
	"encoding/json"
	"errors"

	"github.com/vireolabs/thorlink/types"
)

// ErrEncoding is returned (possibly wrapped) when arguments do not match the
// ABI arity or types, or when an indexed field name is unknown to the event
// ABI. It is a local failure: nothing reached the node.
var ErrEncoding = errors.New("codec: encoding error")

// Codec encodes and decodes contract data against ABI fragments. ABI
// descriptors are opaque JSON fragments in the conventional contract ABI
// format; the codec owns their interpretation.
//
// Implementations must be safe for concurrent use: bindings share a single
// codec across visitors.
type Codec interface {
	// EncodeInput encodes a method call payload (selector plus arguments).
	// Argument mismatches fail with an error wrapping ErrEncoding.
	EncodeInput(abi json.RawMessage, args []any) (types.HexData, error)

	// DecodeOutput decodes a method return payload into named values.
	DecodeOutput(abi json.RawMessage, data types.HexData) (map[string]any, error)

	// EventTopics maps named indexed arguments to positional topic hashes.
	// The returned slice is positional: index 0 is always the event
	// signature hash, nil entries are wildcards. Unknown names in indexed
	// fail with an error wrapping ErrEncoding.
	EventTopics(abi json.RawMessage, indexed map[string]any) ([]*types.Bytes32, error)
}
