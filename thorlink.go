// Package thorlink is a client access layer for a Thor-style deterministic,
// block-structured chain. It lets a host application query chain state at
// arbitrary historical or pending revisions, subscribe to chain progress,
// search indexed logs with pagination, and submit signing requests to an
// external signing authority without ever touching private key material.
//
// Two facades cover the surface. Client is chain-facing:
//
//	node, _ := thorest.New("https://node.example")
//	client := thorlink.New(node, thorlink.WithCodec(myCodec))
//	defer client.Close()
//
//	acc, _ := client.Account(addr, revision.Best()).Get(ctx)
//
// Vendor is signer-facing:
//
//	vendor := thorlink.NewVendor(myWallet)
//	res, err := vendor.SignTx().Message(clause).Request(ctx, signing.TxOptions{})
package thorlink

import (
	"context"
	"sync"

	"github.com/vireolabs/thorlink/codec"
	"github.com/vireolabs/thorlink/filter"
	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/thorest"
	"github.com/vireolabs/thorlink/ticker"
	"github.com/vireolabs/thorlink/types"
)

// Gateway is the node capability the facade consumes: raw state, block,
// transaction and log queries plus the atomic explain call and the head
// watch. *thorest.Client implements it; tests substitute fakes.
type Gateway interface {
	GetStatus(ctx context.Context) (*types.Status, error)
	GetAccount(ctx context.Context, addr types.Address, rev revision.Revision) (*types.Account, error)
	GetCode(ctx context.Context, addr types.Address, rev revision.Revision) (types.HexData, error)
	GetStorage(ctx context.Context, addr types.Address, key types.Bytes32, rev revision.Revision) (types.Bytes32, error)
	GetBlock(ctx context.Context, rev revision.Revision) (*types.Block, error)
	GetTransaction(ctx context.Context, id types.Bytes32, head *types.Bytes32) (*types.Transaction, error)
	GetReceipt(ctx context.Context, id types.Bytes32, head *types.Bytes32) (*types.Receipt, error)
	Explain(ctx context.Context, req thorest.ExplainRequest, rev revision.Revision) ([]types.VMOutput, error)

	filter.EventSource
	filter.TransferSource
	ticker.Source
}

var _ Gateway = (*thorest.Client)(nil)

// Client is the chain-facing facade. Safe for concurrent use; every query
// visitor it hands out is an independent, immutable read handle.
type Client struct {
	node  Gateway
	codec codec.Codec

	mu      sync.Mutex
	tracker *ticker.Tracker
}

// config holds construction options for a Client.
type config struct {
	codec codec.Codec
}

// Option configures a Client.
type Option func(*config)

// WithCodec attaches the ABI codec used by method and event bindings.
// Without one, bindings fail locally with codec.ErrEncoding.
func WithCodec(c codec.Codec) Option {
	return func(cfg *config) {
		cfg.codec = c
	}
}

// New builds a client over the given node gateway.
func New(node Gateway, opts ...Option) *Client {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		node:  node,
		codec: cfg.codec,
	}
}

// Close stops the shared head tracker, if Ticker was ever called. Visitors
// and filters created earlier remain usable; only head waits stop advancing.
func (c *Client) Close() {
	c.mu.Lock()
	tracker := c.tracker
	c.tracker = nil
	c.mu.Unlock()

	if tracker != nil {
		tracker.Close()
	}
}

// Status fetches the node's chain status.
func (c *Client) Status(ctx context.Context) (*types.Status, error) {
	return c.node.GetStatus(ctx)
}

// Ticker returns a head ticker anchored at the current head. The first call
// starts a single shared head-watch; all tickers fan out from it.
func (c *Client) Ticker() *ticker.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracker == nil {
		c.tracker = ticker.NewTracker(c.node)
		// Background: the watch outlives any single request context and
		// stops at Close.
		_ = c.tracker.Start(context.Background())
	}
	return c.tracker.Ticker()
}

// Events builds an event log filter over the given criteria set
// (a disjunction; empty matches everything).
func (c *Client) Events(criteria ...types.EventCriteria) *filter.Events {
	return filter.NewEvents(c.node, criteria...)
}

// Transfers builds a transfer log filter over the given criteria set.
func (c *Client) Transfers(criteria ...types.TransferCriteria) *filter.Transfers {
	return filter.NewTransfers(c.node, criteria...)
}

// Explain simulates clauses atomically against one consistent state snapshot
// at the given revision. Reverted clauses come back as normal outputs.
func (c *Client) Explain(ctx context.Context, req thorest.ExplainRequest, rev revision.Revision) ([]types.VMOutput, error) {
	return c.node.Explain(ctx, req, rev)
}
