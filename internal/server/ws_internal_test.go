package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pefman/champion-duel/internal/models"
	"github.com/pefman/champion-duel/internal/session"
)

func serverConn(t *testing.T) *websocket.Conn {
	t.Helper()
	conns := make(chan *websocket.Conn, 1)
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case c := <-conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no server connection")
		return nil
	}
}

func TestWsRenderer_FailsOnceAndIsDetached(t *testing.T) {
	conn := serverConn(t)
	out := &wsRenderer{conn: conn, log: zap.NewNop()}

	out.LogMessage("hello")
	assert.False(t, out.Failed())

	require.NoError(t, conn.Close())
	out.LogMessage("lost")
	assert.True(t, out.Failed())

	hub := session.NewBroadcaster()
	hub.Attach(out)
	hub.RenderStats(models.NewMatchState().Snapshot())
	assert.Zero(t, hub.Len())
}
