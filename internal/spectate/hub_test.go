package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/variant"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitFor(t, func() bool { return hub.Len() == 2 })

	d := driver.New(driver.DefaultConfig(), variant.NewClassic())
	hub.Broadcast(d.Snapshot())

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var got driver.Snapshot
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "classic", got.Variant)
		assert.Equal(t, 10, got.Width)
		assert.Len(t, got.Active, 4)
	}

	a.Close()
	waitFor(t, func() bool { return hub.Len() == 1 })

	hub.Close()
	assert.Zero(t, hub.Len())
}

func TestSlowViewerDropsFrames(t *testing.T) {
	hub := NewHub(nil)
	c := &client{send: make(chan []byte, sendBuffer)}
	hub.clients[c] = struct{}{}

	d := driver.New(driver.DefaultConfig(), variant.NewClassic())
	for range sendBuffer + 5 {
		hub.Broadcast(d.Snapshot())
	}
	assert.Len(t, c.send, sendBuffer)
	assert.Equal(t, int64(5), hub.Dropped())
}
