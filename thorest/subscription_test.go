package thorest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/vireolabs/thorlink/types"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// beatServer upgrades the head subscription endpoint and pushes the given
// summaries, then keeps the connection open until the client closes it.
func beatServer(t *testing.T, heads ...types.HeadSummary) http.Handler {
	t.Helper()

	upgrader := websocket.Upgrader{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subscriptions/beat" {
			http.NotFound(w, r)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for _, head := range heads {
			if err := conn.WriteJSON(head); err != nil {
				return
			}
		}

		// Hold the stream open; exit when the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func TestClient_WatchHeads(t *testing.T) {
	t.Run("streams summaries in arrival order", func(t *testing.T) {
		first := types.HeadSummary{Number: 1, Timestamp: 1700000010}
		second := types.HeadSummary{Number: 2, Timestamp: 1700000020, Obsolete: true}
		client := newTestClient(t, beatServer(t, first, second))

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		heads, err := client.WatchHeads(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, <-heads)
		assert.Equal(t, second, <-heads)
	})

	t.Run("cancelation closes the stream", func(t *testing.T) {
		client := newTestClient(t, beatServer(t))

		ctx, cancel := context.WithCancel(t.Context())
		heads, err := client.WatchHeads(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, open := <-heads:
			assert.False(t, open, "the channel must close once the watch is abandoned")
		case <-time.After(5 * time.Second):
			t.Fatal("stream did not close after cancelation")
		}
	})

	t.Run("a refused upgrade wraps ErrTransport", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no subscriptions here", http.StatusNotFound)
		}))

		_, err := client.WatchHeads(t.Context())
		assert.ErrorIs(t, err, ErrTransport)
	})
}
