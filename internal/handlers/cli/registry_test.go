package cli

import (
	"context"
	"testing"
	"time"

	"github.com/vireolabs/thorlink"
	"github.com/vireolabs/thorlink/filter"
	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/thorest"
	"github.com/vireolabs/thorlink/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// fakeGateway satisfies the facade's node contract with canned answers and
// records what each command asked for.
type fakeGateway struct {
	gotAddr     types.Address
	gotRev      revision.Revision
	gotTxID     types.Bytes32
	wantReceipt bool
	eventReqs   []filter.EventRequest
	transferReq []filter.TransferRequest
}

func (g *fakeGateway) GetStatus(context.Context) (*types.Status, error) {
	return &types.Status{Progress: 1}, nil
}

func (g *fakeGateway) GetAccount(_ context.Context, addr types.Address, rev revision.Revision) (*types.Account, error) {
	g.gotAddr, g.gotRev = addr, rev
	return &types.Account{Balance: "0x10"}, nil
}

func (g *fakeGateway) GetCode(_ context.Context, addr types.Address, rev revision.Revision) (types.HexData, error) {
	return nil, nil
}

func (g *fakeGateway) GetStorage(_ context.Context, addr types.Address, key types.Bytes32, rev revision.Revision) (types.Bytes32, error) {
	return types.Bytes32{}, nil
}

func (g *fakeGateway) GetBlock(_ context.Context, rev revision.Revision) (*types.Block, error) {
	g.gotRev = rev
	return nil, nil
}

func (g *fakeGateway) GetTransaction(_ context.Context, id types.Bytes32, head *types.Bytes32) (*types.Transaction, error) {
	g.gotTxID, g.wantReceipt = id, false
	return nil, nil
}

func (g *fakeGateway) GetReceipt(_ context.Context, id types.Bytes32, head *types.Bytes32) (*types.Receipt, error) {
	g.gotTxID, g.wantReceipt = id, true
	return nil, nil
}

func (g *fakeGateway) Explain(context.Context, thorest.ExplainRequest, revision.Revision) ([]types.VMOutput, error) {
	return nil, nil
}

func (g *fakeGateway) FilterEvents(_ context.Context, req filter.EventRequest) ([]types.Event, error) {
	g.eventReqs = append(g.eventReqs, req)
	return []types.Event{}, nil
}

func (g *fakeGateway) FilterTransfers(_ context.Context, req filter.TransferRequest) ([]types.Transfer, error) {
	g.transferReq = append(g.transferReq, req)
	return []types.Transfer{}, nil
}

func (g *fakeGateway) WatchHeads(ctx context.Context) (<-chan types.HeadSummary, error) {
	heads := make(chan types.HeadSummary)
	go func() {
		defer close(heads)
		for n := uint32(1); ; n++ {
			var id types.Bytes32
			id[0], id[1], id[2], id[3] = byte(n>>24), byte(n>>16), byte(n>>8), byte(n)

			select {
			case heads <- types.HeadSummary{ID: id, Number: n}:
			case <-ctx.Done():
				return
			}

			select {
			case <-time.After(time.Millisecond):
			case <-ctx.Done():
				return
			}
		}
	}()
	return heads, nil
}

func runCommand(t *testing.T, node *fakeGateway, args ...string) error {
	t.Helper()

	client := thorlink.New(node)
	t.Cleanup(client.Close)

	app := &cli.Command{Commands: []*cli.Command{
		statusCommand(client),
		accountCommand(client),
		blockCommand(client),
		transactionCommand(client),
		logsCommand(client),
		watchCommand(client),
	}}
	return app.Run(t.Context(), append([]string{"thorlink"}, args...))
}

func TestAccountCommand(t *testing.T) {
	t.Run("carries the address and revision flags into the query", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "account",
			"--address", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed",
			"--revision", "finalized",
		)
		require.NoError(t, err)
		assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", node.gotAddr.String())
		assert.True(t, node.gotRev.IsFinalized())
	})

	t.Run("defaults the revision to best", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "account", "--address", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
		require.NoError(t, err)
		assert.True(t, node.gotRev.IsBest())
	})

	t.Run("rejects a malformed address before querying", func(t *testing.T) {
		err := runCommand(t, &fakeGateway{}, "account", "--address", "not-hex")
		assert.Error(t, err)
	})
}

func TestBlockCommand(t *testing.T) {
	node := &fakeGateway{}

	err := runCommand(t, node, "block", "--revision", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", node.gotRev.String())
}

func TestTransactionCommand(t *testing.T) {
	const id = "0x00003e9000000000000000000000000000000000000000000000000000abcdef"

	t.Run("fetches the transaction by default", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "tx", "--id", id)
		require.NoError(t, err)
		assert.Equal(t, id, node.gotTxID.String())
		assert.False(t, node.wantReceipt)
	})

	t.Run("switches to the receipt with --receipt", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "tx", "--id", id, "--receipt")
		require.NoError(t, err)
		assert.True(t, node.wantReceipt)
	})
}

func TestLogsCommand(t *testing.T) {
	t.Run("builds an event query from the flags", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "logs",
			"--kind", "event",
			"--address", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed",
			"--from", "0", "--to", "100",
			"--desc",
			"--limit", "5",
		)
		require.NoError(t, err)

		require.Len(t, node.eventReqs, 1)
		req := node.eventReqs[0]
		require.NotNil(t, req.Range)
		assert.Equal(t, filter.UnitBlock, req.Range.Unit)
		assert.Equal(t, uint64(100), req.Range.To)
		assert.Equal(t, filter.OrderDesc, req.Order)
		assert.Equal(t, uint64(5), req.Limit)
	})

	t.Run("omits the range when no bound flag is set", func(t *testing.T) {
		node := &fakeGateway{}

		err := runCommand(t, node, "logs", "--kind", "transfer")
		require.NoError(t, err)

		require.Len(t, node.transferReq, 1)
		assert.Nil(t, node.transferReq[0].Range)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		err := runCommand(t, &fakeGateway{}, "logs", "--kind", "receipt")
		assert.ErrorContains(t, err, "unknown log kind")
	})
}

func TestWatchCommand(t *testing.T) {
	node := &fakeGateway{}

	err := runCommand(t, node, "watch", "--count", "1")
	require.NoError(t, err)
}
