package thorest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vireolabs/thorlink/filter"
	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/types"
)

// ExplainRequest is the node's atomic multi-clause simulation input. All
// clauses execute against one consistent state snapshot at the chosen
// revision; optional fields refine the simulated execution context.
type ExplainRequest struct {
	Clauses    []types.Clause  `json:"clauses"`
	Caller     *types.Address  `json:"caller,omitempty"`
	Gas        uint64          `json:"gas,omitempty"`
	GasPrice   *types.Quantity `json:"gasPrice,omitempty"`
	GasPayer   *types.Address  `json:"gasPayer,omitempty"`
	ProvedWork *types.Quantity `json:"provedWork,omitempty"`
	Expiration uint32          `json:"expiration,omitempty"`
	BlockRef   string          `json:"blockRef,omitempty"`
}

// revisionQuery renders the revision query parameter. The "best" sentinel is
// the node default and is left implicit.
func revisionQuery(rev revision.Revision) url.Values {
	if rev.IsBest() {
		return nil
	}
	return url.Values{"revision": {rev.String()}}
}

func headQuery(head *types.Bytes32) url.Values {
	if head == nil {
		return nil
	}
	return url.Values{"head": {head.String()}}
}

// GetStatus fetches the node's chain status: sync progress, current head,
// and the latest finalized block id.
func (c *Client) GetStatus(ctx context.Context) (*types.Status, error) {
	var status types.Status
	if err := c.getJSON(ctx, "thorest.status", c.endpoint("/node/status", nil), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetAccount fetches the account state at the given revision.
func (c *Client) GetAccount(ctx context.Context, addr types.Address, rev revision.Revision) (*types.Account, error) {
	var account types.Account
	u := c.endpoint("/accounts/"+addr.String(), revisionQuery(rev))
	if err := c.getJSON(ctx, "thorest.account", u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetCode fetches the account's contract code at the given revision. An
// account with no code yields empty data.
func (c *Client) GetCode(ctx context.Context, addr types.Address, rev revision.Revision) (types.HexData, error) {
	var res struct {
		Code types.HexData `json:"code"`
	}
	u := c.endpoint("/accounts/"+addr.String()+"/code", revisionQuery(rev))
	if err := c.getJSON(ctx, "thorest.code", u, &res); err != nil {
		return nil, err
	}
	return res.Code, nil
}

// GetStorage fetches one storage slot of the account at the given revision.
// Unset slots yield the zero value.
func (c *Client) GetStorage(ctx context.Context, addr types.Address, key types.Bytes32, rev revision.Revision) (types.Bytes32, error) {
	var res struct {
		Value types.Bytes32 `json:"value"`
	}
	u := c.endpoint("/accounts/"+addr.String()+"/storage/"+key.String(), revisionQuery(rev))
	if err := c.getJSON(ctx, "thorest.storage", u, &res); err != nil {
		return types.Bytes32{}, err
	}
	return res.Value, nil
}

// GetBlock fetches the block at the given revision. A well-formed revision
// the node does not know yields (nil, nil), not an error.
func (c *Client) GetBlock(ctx context.Context, rev revision.Revision) (*types.Block, error) {
	payload, err := c.do(ctx, "thorest.block", http.MethodGet, c.endpoint("/blocks/"+rev.String(), nil), nil)
	if err != nil {
		return nil, err
	}
	if isNull(payload) {
		return nil, nil
	}

	var block types.Block
	if err := decodeJSON(payload, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// GetTransaction fetches a transaction by id, or (nil, nil) when the node
// does not know it. A non-nil head pins the lookup to the chain branch
// ending at that block.
func (c *Client) GetTransaction(ctx context.Context, id types.Bytes32, head *types.Bytes32) (*types.Transaction, error) {
	u := c.endpoint("/transactions/"+id.String(), headQuery(head))
	payload, err := c.do(ctx, "thorest.transaction", http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if isNull(payload) {
		return nil, nil
	}

	var tx types.Transaction
	if err := decodeJSON(payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetReceipt fetches a transaction's receipt, or (nil, nil) while the
// transaction is unknown or not yet mined.
func (c *Client) GetReceipt(ctx context.Context, id types.Bytes32, head *types.Bytes32) (*types.Receipt, error) {
	u := c.endpoint("/transactions/"+id.String()+"/receipt", headQuery(head))
	payload, err := c.do(ctx, "thorest.receipt", http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if isNull(payload) {
		return nil, nil
	}

	var receipt types.Receipt
	if err := decodeJSON(payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Explain simulates the given clauses atomically at the given revision and
// returns one VM output per clause. Reverted clauses are normal outputs, not
// errors.
func (c *Client) Explain(ctx context.Context, req ExplainRequest, rev revision.Revision) ([]types.VMOutput, error) {
	var outputs []types.VMOutput
	u := c.endpoint("/accounts/*", revisionQuery(rev))
	if err := c.postJSON(ctx, "thorest.explain", u, req, &outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// logPayload is the node's log query body, shared by both kinds.
type logPayload[C any] struct {
	Range   *filter.Range `json:"range,omitempty"`
	Options struct {
		Offset uint64 `json:"offset"`
		Limit  uint64 `json:"limit"`
	} `json:"options"`
	CriteriaSet []C         `json:"criteriaSet"`
	Order       filter.Order `json:"order"`
}

func newLogPayload[C any](criteria []C, rng *filter.Range, order filter.Order, offset, limit uint64) logPayload[C] {
	p := logPayload[C]{
		Range:       rng,
		CriteriaSet: criteria,
		Order:       order,
	}
	p.Options.Offset = offset
	p.Options.Limit = limit
	return p
}

// mapLogError translates the node's page-cap rejection into the filter
// package's sentinel. The node reports it as 403 with a "limit" message.
func mapLogError(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.status == http.StatusForbidden && strings.Contains(se.body, "limit") {
		return fmt.Errorf("%w: %s", filter.ErrLimitExceeded, se.body)
	}
	return err
}

// FilterEvents executes one event log query round-trip.
func (c *Client) FilterEvents(ctx context.Context, req filter.EventRequest) ([]types.Event, error) {
	payload := newLogPayload(req.Criteria, req.Range, req.Order, req.Offset, req.Limit)

	var events []types.Event
	if err := c.postJSON(ctx, "thorest.logs.event", c.endpoint("/logs/event", nil), payload, &events); err != nil {
		return nil, mapLogError(err)
	}
	return events, nil
}

// FilterTransfers executes one transfer log query round-trip.
func (c *Client) FilterTransfers(ctx context.Context, req filter.TransferRequest) ([]types.Transfer, error) {
	payload := newLogPayload(req.Criteria, req.Range, req.Order, req.Offset, req.Limit)

	var transfers []types.Transfer
	if err := c.postJSON(ctx, "thorest.logs.transfer", c.endpoint("/logs/transfer", nil), payload, &transfers); err != nil {
		return nil, mapLogError(err)
	}
	return transfers, nil
}
