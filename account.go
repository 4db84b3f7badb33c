package thorlink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vireolabs/thorlink/codec"
	"github.com/vireolabs/thorlink/filter"
	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/thorest"
	"github.com/vireolabs/thorlink/types"
)

// Account is a revision-bound read handle on one account. It is immutable;
// every Get issues exactly one node round-trip and no result is cached, so
// callers needing stability must retain the returned snapshot.
type Account struct {
	node  Gateway
	codec codec.Codec
	addr  types.Address
	rev   revision.Revision
}

// Account returns a visitor for addr anchored at rev.
func (c *Client) Account(addr types.Address, rev revision.Revision) *Account {
	return &Account{
		node:  c.node,
		codec: c.codec,
		addr:  addr,
		rev:   rev,
	}
}

// Address returns the visited address.
func (a *Account) Address() types.Address { return a.addr }

// Revision returns the anchor revision.
func (a *Account) Revision() revision.Revision { return a.rev }

// Get fetches the account state (balance, energy, code flag) at the anchor
// revision.
func (a *Account) Get(ctx context.Context) (*types.Account, error) {
	return a.node.GetAccount(ctx, a.addr, a.rev)
}

// Code fetches the account's contract code at the anchor revision.
func (a *Account) Code(ctx context.Context) (types.HexData, error) {
	return a.node.GetCode(ctx, a.addr, a.rev)
}

// Storage fetches one storage slot of the account at the anchor revision.
func (a *Account) Storage(ctx context.Context, key types.Bytes32) (types.Bytes32, error) {
	return a.node.GetStorage(ctx, a.addr, key, a.rev)
}

// Method binds an ABI-described method of this account's contract. The
// binding closes over the visitor's address and revision and performs no I/O
// itself.
func (a *Account) Method(abi json.RawMessage) *Method {
	return &Method{acc: a, abi: abi}
}

// Event binds an ABI-described event of this account's contract.
func (a *Account) Event(abi json.RawMessage) *Event {
	return &Event{acc: a, abi: abi}
}

func (a *Account) requireCodec() (codec.Codec, error) {
	if a.codec == nil {
		return nil, fmt.Errorf("%w: no codec configured on client", codec.ErrEncoding)
	}
	return a.codec, nil
}

// Method binds one contract method to clause building and call simulation.
type Method struct {
	acc *Account
	abi json.RawMessage
}

// AsClause encodes args into a clause paying value to the bound contract.
// Pure and offline: arity or type mismatches fail locally with
// codec.ErrEncoding, nothing reaches the node.
func (m *Method) AsClause(value types.Quantity, args ...any) (types.Clause, error) {
	cdc, err := m.acc.requireCodec()
	if err != nil {
		return types.Clause{}, err
	}

	data, err := cdc.EncodeInput(m.abi, args)
	if err != nil {
		return types.Clause{}, err
	}

	to := m.acc.addr
	return types.Clause{
		To:    &to,
		Value: value,
		Data:  data,
	}, nil
}

// CallResult is a simulated method call round-trip. Reverted and VMError
// come straight from the VM: a reverted call is a successful round-trip
// whose result says "reverted", in which case Decoded is nil.
type CallResult struct {
	types.VMOutput
	Decoded map[string]any
}

// callConfig holds the simulated execution context of one Call.
type callConfig struct {
	caller   *types.Address
	gas      uint64
	gasPayer *types.Address
}

// CallOption refines the simulated execution context of a Call.
type CallOption func(*callConfig)

// WithCaller sets the simulated msg sender.
func WithCaller(addr types.Address) CallOption {
	return func(c *callConfig) {
		c.caller = &addr
	}
}

// WithGas caps the simulated gas.
func WithGas(gas uint64) CallOption {
	return func(c *callConfig) {
		c.gas = gas
	}
}

// WithGasPayer sets the simulated gas payer.
func WithGasPayer(addr types.Address) CallOption {
	return func(c *callConfig) {
		c.gasPayer = &addr
	}
}

// Call simulates the method through the node's atomic explain entry point
// with a single clause, at the binding's anchor revision, and decodes the
// single output. VM-level failure is not an error here; inspect Reverted and
// VMError on the result.
func (m *Method) Call(ctx context.Context, value types.Quantity, args []any, opts ...CallOption) (*CallResult, error) {
	clause, err := m.AsClause(value, args...)
	if err != nil {
		return nil, err
	}

	cfg := callConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	outputs, err := m.acc.node.Explain(ctx, thorest.ExplainRequest{
		Clauses:  []types.Clause{clause},
		Caller:   cfg.caller,
		Gas:      cfg.gas,
		GasPayer: cfg.gasPayer,
	}, m.acc.rev)
	if err != nil {
		return nil, err
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("%w: explain returned %d outputs for 1 clause", thorest.ErrTransport, len(outputs))
	}

	result := &CallResult{VMOutput: outputs[0]}
	if !result.Reverted && result.VMError == "" {
		cdc, err := m.acc.requireCodec()
		if err != nil {
			return nil, err
		}
		if result.Decoded, err = cdc.DecodeOutput(m.abi, result.Data); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Event binds one contract event to criteria building.
type Event struct {
	acc *Account
	abi json.RawMessage
}

// AsCriteria maps named indexed arguments to the positional topic0..topic4
// scheme. Topic0 is always the event signature hash; the visitor's bound
// address is merged in. Unknown names fail with codec.ErrEncoding.
func (e *Event) AsCriteria(indexed map[string]any) (types.EventCriteria, error) {
	cdc, err := e.acc.requireCodec()
	if err != nil {
		return types.EventCriteria{}, err
	}

	topics, err := cdc.EventTopics(e.abi, indexed)
	if err != nil {
		return types.EventCriteria{}, err
	}

	addr := e.acc.addr
	criteria := types.EventCriteria{Address: &addr}
	for pos, topic := range topics {
		if topic != nil {
			criteria = criteria.WithTopic(pos, *topic)
		}
	}
	return criteria, nil
}

// Filter builds an event filter pre-seeded with one criteria object per
// element of indexedSet (a disjunction), each scoped to the bound address.
// An empty set filters on the event signature alone.
func (e *Event) Filter(indexedSet []map[string]any) (*filter.Events, error) {
	if len(indexedSet) == 0 {
		indexedSet = []map[string]any{nil}
	}

	criteria := make([]types.EventCriteria, 0, len(indexedSet))
	for _, indexed := range indexedSet {
		c, err := e.AsCriteria(indexed)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, c)
	}

	return filter.NewEvents(e.acc.node, criteria...), nil
}
