package thorlink

import (
	"context"

	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/types"
)

// Block is a revision-bound read handle on one block.
type Block struct {
	node Gateway
	rev  revision.Revision
}

// Block returns a visitor for the block at rev.
func (c *Client) Block(rev revision.Revision) *Block {
	return &Block{node: c.node, rev: rev}
}

// Revision returns the anchor revision.
func (b *Block) Revision() revision.Revision { return b.rev }

// Get fetches the block. A well-formed revision the chain does not contain
// (for example a height beyond the head) yields (nil, nil), not an error;
// transport faults are errors.
func (b *Block) Get(ctx context.Context) (*types.Block, error) {
	return b.node.GetBlock(ctx, b.rev)
}
