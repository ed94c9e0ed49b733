package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", Handler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"welcome"}`, string(msg))

	require.Eventually(t, func() bool { return hub.Count() > 0 }, time.Second, 10*time.Millisecond)
	return ws
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub(nil)
	ws := dial(t, hub)

	hub.Broadcast(Event{Type: ProductUpdated, ProductID: 7})

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var e Event
	require.NoError(t, json.Unmarshal(msg, &e))
	assert.Equal(t, ProductUpdated, e.Type)
	assert.Equal(t, 7, e.ProductID)
	assert.False(t, e.At.IsZero())
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(nil)
	ws := dial(t, hub)

	hub.Close()
	assert.Zero(t, hub.Count())

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := ws.ReadMessage()
	require.Error(t, err)

	// broadcasting to a closed hub is a no-op
	hub.Broadcast(Event{Type: CatalogReloaded})
}
