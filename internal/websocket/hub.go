package websocket

import "log"

// envelope targets a payload at a single connected user.
type envelope struct {
	userID  uint
	payload []byte
}

// Hub maintains the set of connected clients and pushes notification
// payloads to them. One connection per user; a newer connection replaces an
// older one.
type Hub struct {
	clients map[uint]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan envelope
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan envelope, 256),
	}
}

// SendToUser queues a payload for delivery to the given user's connection.
// Non-blocking: when the hub is saturated the payload is dropped, since
// notifications are best-effort and the durable state lives in the store.
func (h *Hub) SendToUser(userID uint, payload []byte) {
	select {
	case h.direct <- envelope{userID: userID, payload: payload}:
	default:
		log.Printf("warning: hub delivery channel full, dropping notification for user %d", userID)
	}
}

// Run starts the hub loop. It owns the clients map; all mutation happens
// here.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if existing, ok := h.clients[client.UserID]; ok {
				close(existing.send)
			}
			h.clients[client.UserID] = client

		case client := <-h.unregister:
			if stored, ok := h.clients[client.UserID]; ok && stored == client {
				delete(h.clients, client.UserID)
				close(client.send)
			}

		case env := <-h.direct:
			client, ok := h.clients[env.userID]
			if !ok {
				// User not connected; the notification is simply not pushed.
				continue
			}
			select {
			case client.send <- env.payload:
			default:
				// Slow or dead connection. Drop it.
				log.Printf("warning: send buffer full for user %d, dropping connection", env.userID)
				close(client.send)
				delete(h.clients, env.userID)
			}
		}
	}
}
