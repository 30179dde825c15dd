// internal/hub/websocket.go
package hub

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"smartwarehouse/internal/inventory"
)

// Wire frame types on the push channel.
const (
	MessageConnected  = "Connected"
	MessageItemUpdate = "ReceiveItemUpdate"
	MessageNotify     = "NotifyItemUpdate"
)

type connectedFrame struct {
	Type         string    `json:"type"`
	ConnectionID uuid.UUID `json:"connectionId"`
}

type updateFrame struct {
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

// WSHandler upgrades HTTP connections into hub subscriptions. Each
// connection first receives a Connected frame carrying its connection id,
// then a ReceiveItemUpdate frame for every published event. A client may
// send NotifyItemUpdate frames, which are rebroadcast to every other
// connection.
type WSHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates the websocket endpoint for a hub.
func NewWSHandler(h *Hub) *WSHandler {
	return &WSHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (ws *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("hub: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := ws.hub.Subscribe()
	defer ws.hub.Unsubscribe(sub.ID())

	if err := conn.WriteJSON(connectedFrame{Type: MessageConnected, ConnectionID: sub.ID()}); err != nil {
		return
	}

	go ws.writePump(conn, sub)
	ws.readPump(conn, sub)
}

// writePump forwards hub events to the connection until the subscription
// ends. A write failure tears the connection down; the read pump then
// unsubscribes.
func (ws *WSHandler) writePump(conn *websocket.Conn, sub *Subscriber) {
	for {
		select {
		case ev := <-sub.Updates():
			frame := updateFrame{Type: MessageItemUpdate, ID: ev.ID, Quantity: ev.Quantity}
			if err := conn.WriteJSON(frame); err != nil {
				conn.Close()
				return
			}
		case <-sub.Done():
			return
		}
	}
}

// readPump consumes inbound frames until the peer disconnects.
func (ws *WSHandler) readPump(conn *websocket.Conn, sub *Subscriber) {
	for {
		var frame updateFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Type == MessageNotify {
			// Client-initiated notification: everyone but the sender.
			ws.hub.Publish(inventory.ItemUpdate{ID: frame.ID, Quantity: frame.Quantity}, sub.ID())
		}
	}
}
