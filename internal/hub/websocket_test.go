// internal/hub/websocket_test.go
package hub_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwarehouse/internal/hub"
	"smartwarehouse/internal/inventory"
)

type wsFrame struct {
	Type         string    `json:"type"`
	ConnectionID uuid.UUID `json:"connectionId"`
	ID           uuid.UUID `json:"id"`
	Quantity     int       `json:"quantity"`
}

func dialWS(t *testing.T, server *httptest.Server) (*websocket.Conn, uuid.UUID) {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, hub.MessageConnected, frame.Type)
	require.NotEqual(t, uuid.Nil, frame.ConnectionID)

	return conn, frame.ConnectionID
}

func TestWebsocketReceivesPublishedUpdates(t *testing.T) {
	h := hub.New()
	server := httptest.NewServer(hub.NewWSHandler(h))
	defer server.Close()

	conn, _ := dialWS(t, server)

	ev := inventory.ItemUpdate{ID: uuid.New(), Quantity: 12}
	h.Publish(ev, uuid.Nil)

	var frame wsFrame
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, hub.MessageItemUpdate, frame.Type)
	assert.Equal(t, ev.ID, frame.ID)
	assert.Equal(t, ev.Quantity, frame.Quantity)
}

func TestWebsocketNotifyRebroadcastsToOthersOnly(t *testing.T) {
	h := hub.New()
	server := httptest.NewServer(hub.NewWSHandler(h))
	defer server.Close()

	sender, _ := dialWS(t, server)
	receiver, _ := dialWS(t, server)

	itemID := uuid.New()
	require.NoError(t, sender.WriteJSON(wsFrame{Type: hub.MessageNotify, ID: itemID, Quantity: 4}))

	var frame wsFrame
	receiver.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, receiver.ReadJSON(&frame))
	assert.Equal(t, hub.MessageItemUpdate, frame.Type)
	assert.Equal(t, itemID, frame.ID)
	assert.Equal(t, 4, frame.Quantity)

	// The sender must not hear its own notification back.
	sender.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	err := sender.ReadJSON(&frame)
	assert.Error(t, err)
}

func TestWebsocketDisconnectUnsubscribes(t *testing.T) {
	h := hub.New()
	server := httptest.NewServer(hub.NewWSHandler(h))
	defer server.Close()

	conn, _ := dialWS(t, server)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 10*time.Millisecond)

	// A publish after the disconnect must be delivered cleanly to the rest.
	survivor, _ := dialWS(t, server)
	h.Publish(inventory.ItemUpdate{ID: uuid.New(), Quantity: 1}, uuid.Nil)

	var frame wsFrame
	survivor.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, survivor.ReadJSON(&frame))
	assert.Equal(t, hub.MessageItemUpdate, frame.Type)
}
