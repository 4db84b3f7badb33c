package thorlink

import (
	"context"

	"github.com/vireolabs/thorlink/types"
)

// Transaction is a read handle on one transaction. An optional head pin
// anchors lookups to the chain branch ending at that block; without one the
// node answers from the current trunk.
type Transaction struct {
	node Gateway
	id   types.Bytes32
	head *types.Bytes32
}

// Transaction returns a visitor for the transaction with the given id.
func (c *Client) Transaction(id types.Bytes32) *Transaction {
	return &Transaction{node: c.node, id: id}
}

// ID returns the visited transaction id.
func (t *Transaction) ID() types.Bytes32 { return t.id }

// WithHead returns a copy of the visitor pinned to the given head block.
// The receiver is unchanged; visitors stay immutable.
func (t *Transaction) WithHead(head types.Bytes32) *Transaction {
	return &Transaction{node: t.node, id: t.id, head: &head}
}

// Get fetches the transaction, or (nil, nil) while the node does not know
// it.
func (t *Transaction) Get(ctx context.Context) (*types.Transaction, error) {
	return t.node.GetTransaction(ctx, t.id, t.head)
}

// Receipt fetches the transaction's receipt. It yields (nil, nil) until the
// transaction is mined, which is the caller's signal to keep polling.
func (t *Transaction) Receipt(ctx context.Context) (*types.Receipt, error) {
	return t.node.GetReceipt(ctx, t.id, t.head)
}
