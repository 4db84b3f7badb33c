// Package filter implements paged search over the chain's indexed logs.
//
// A filter accumulates a criteria set (a disjunction: a log matches if it
// matches any one criteria object), an optional inclusive range, and an
// iteration order, then fetches matching logs one page per Apply call. Logs
// are totally ordered by (block number, transaction index, log index); the
// configured order decides which end of that ordering offset 0 refers to.
//
// The engine holds no chain data between calls: every Apply is a fresh
// round-trip against the node. Because history can reorganize between two
// calls using block-unit ranges, pagination is best-effort consistent only;
// time-unit ranges survive short reorganizations better since timestamps
// rarely move.
package filter

import (
	"context"
	"errors"
	"fmt"

	"github.com/vireolabs/thorlink/internal/pkg/validator"
	"github.com/vireolabs/thorlink/types"
)

// ErrLimitExceeded is returned when the requested page size exceeds the
// node's own cap. The engine surfaces this rather than silently truncating,
// since a shortened page would break the pagination contract.
var ErrLimitExceeded = errors.New("filter: limit exceeds node page-size cap")

// Unit selects how a Range is interpreted.
type Unit string

const (
	// UnitBlock bounds the range by block number.
	UnitBlock Unit = "block"
	// UnitTime bounds the range by block timestamp (UNIX seconds).
	UnitTime Unit = "time"
)

// Order is the iteration order over the canonical log ordering.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Range is an inclusive [From, To] bound. From > To is not an error; such a
// range simply matches nothing.
type Range struct {
	Unit Unit   `json:"unit" validate:"required,oneof=block time"`
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// EventRequest is one log query round-trip as handed to the node gateway.
type EventRequest struct {
	Criteria []types.EventCriteria
	Range    *Range
	Order    Order
	Offset   uint64
	Limit    uint64
}

// TransferRequest is the transfer-kind counterpart of EventRequest.
type TransferRequest struct {
	Criteria []types.TransferCriteria
	Range    *Range
	Order    Order
	Offset   uint64
	Limit    uint64
}

// EventSource executes event log queries. Implementations must report a
// node-side page cap violation with an error wrapping ErrLimitExceeded.
type EventSource interface {
	FilterEvents(ctx context.Context, req EventRequest) ([]types.Event, error)
}

// TransferSource executes transfer log queries under the same contract as
// EventSource.
type TransferSource interface {
	FilterTransfers(ctx context.Context, req TransferRequest) ([]types.Transfer, error)
}

// params is the shared fluent state of both filter kinds.
type params struct {
	rng   *Range
	order Order
}

// validateRange checks the configured range shape. A nil range is valid and
// means "unbounded".
func (p *params) validateRange() error {
	if p.rng == nil {
		return nil
	}

	if err := validator.Validate(*p.rng); err != nil {
		return fmt.Errorf("filter: invalid range: %w", err)
	}
	return nil
}

// degenerate reports whether the configured range can match nothing.
func (p *params) degenerate() bool {
	return p.rng != nil && p.rng.From > p.rng.To
}

// Events filters event logs. Construct via NewEvents, configure with the
// fluent Range/Asc/Desc setters, then page through results with Apply.
// Not safe for concurrent use.
type Events struct {
	params
	src      EventSource
	criteria []types.EventCriteria
}

// NewEvents builds an event filter over src with the given criteria set.
// An empty set matches every event. Iteration order defaults to ascending.
func NewEvents(src EventSource, criteria ...types.EventCriteria) *Events {
	return &Events{
		params:   params{order: OrderAsc},
		src:      src,
		criteria: criteria,
	}
}

// Range bounds the filter to the inclusive [r.From, r.To]. It may be changed
// between Apply calls and affects subsequent calls only.
func (f *Events) Range(r Range) *Events {
	f.rng = &r
	return f
}

// Desc switches iteration to descending order. Offset 0 then refers to the
// newest matching log instead of the oldest.
func (f *Events) Desc() *Events {
	f.order = OrderDesc
	return f
}

// Asc switches iteration back to ascending order, the default.
func (f *Events) Asc() *Events {
	f.order = OrderAsc
	return f
}

// Apply fetches one page of matching events: up to limit entries starting at
// offset in the configured order. Limit is a maximum, not a guarantee: the
// node may return fewer even when more match. A limit beyond the node's page
// cap fails with ErrLimitExceeded.
func (f *Events) Apply(ctx context.Context, offset, limit uint64) ([]types.Event, error) {
	if err := f.validateRange(); err != nil {
		return nil, err
	}

	if f.degenerate() {
		return []types.Event{}, nil
	}

	return f.src.FilterEvents(ctx, EventRequest{
		Criteria: f.criteria,
		Range:    f.rng,
		Order:    f.order,
		Offset:   offset,
		Limit:    limit,
	})
}

// Transfers filters transfer logs. Same contract as Events, dispatched by
// kind. Not safe for concurrent use.
type Transfers struct {
	params
	src      TransferSource
	criteria []types.TransferCriteria
}

// NewTransfers builds a transfer filter over src with the given criteria
// set. An empty set matches every transfer.
func NewTransfers(src TransferSource, criteria ...types.TransferCriteria) *Transfers {
	return &Transfers{
		params:   params{order: OrderAsc},
		src:      src,
		criteria: criteria,
	}
}

// Range bounds the filter to the inclusive [r.From, r.To].
func (f *Transfers) Range(r Range) *Transfers {
	f.rng = &r
	return f
}

// Desc switches iteration to descending order.
func (f *Transfers) Desc() *Transfers {
	f.order = OrderDesc
	return f
}

// Asc switches iteration back to ascending order, the default.
func (f *Transfers) Asc() *Transfers {
	f.order = OrderAsc
	return f
}

// Apply fetches one page of matching transfers under the same contract as
// Events.Apply.
func (f *Transfers) Apply(ctx context.Context, offset, limit uint64) ([]types.Transfer, error) {
	if err := f.validateRange(); err != nil {
		return nil, err
	}

	if f.degenerate() {
		return []types.Transfer{}, nil
	}

	return f.src.FilterTransfers(ctx, TransferRequest{
		Criteria: f.criteria,
		Range:    f.rng,
		Order:    f.order,
		Offset:   offset,
		Limit:    limit,
	})
}
