package thorest

import (
	"context"
	"fmt"

	"github.com/vireolabs/thorlink/types"

	"github.com/gorilla/websocket"
)

// wsConn is the slice of *websocket.Conn the subscription reader needs.
type wsConn interface {
	ReadJSON(v any) error
	Close() error
}

// wsDialer opens websocket connections; swapped out in tests.
type wsDialer interface {
	DialContext(ctx context.Context, rawURL string) (wsConn, error)
}

type defaultWSDialer struct{}

func (defaultWSDialer) DialContext(ctx context.Context, rawURL string) (wsConn, error) {
	conn, res, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if res != nil && res.Body != nil {
		res.Body.Close()
	}
	return conn, nil
}

// beatURL is the websocket form of the node's head subscription endpoint.
func (c *Client) beatURL() string {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + "/subscriptions/beat"
	return u.String()
}

// WatchHeads opens a head subscription and streams summaries as the chain
// advances. The returned channel is closed when the stream drops or ctx is
// canceled; callers (the ticker's tracker) reconnect by calling again.
func (c *Client) WatchHeads(ctx context.Context) (<-chan types.HeadSummary, error) {
	conn, err := c.dialer.DialContext(ctx, c.beatURL())
	if err != nil {
		return nil, fmt.Errorf("%w: dialing head subscription: %v", ErrTransport, err)
	}

	heads := make(chan types.HeadSummary, 16)
	done := make(chan struct{})

	// Unblock the blocking ReadJSON when the caller gives up.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(heads)
		defer close(done)
		defer conn.Close()

		for {
			var head types.HeadSummary
			if err := conn.ReadJSON(&head); err != nil {
				return
			}

			select {
			case heads <- head:
			case <-ctx.Done():
				return
			}
		}
	}()

	return heads, nil
}
