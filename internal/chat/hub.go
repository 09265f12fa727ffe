// Package chat implements the realtime gateway: a fan-out registry of
// websocket connections plus the inbound message pipeline.
package chat

// Hub is the fan-out registry. A single run loop owns the client set, so
// registration, unregistration and broadcast never race.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registry events until the process exits. Call it in its
// own goroutine before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Client can't keep up, drop it
					delete(h.clients, client)
					client.closeSend()
				}
			}
		}
	}
}

// Broadcast queues a raw payload for delivery to every connected client,
// including the sender.
func (h *Hub) Broadcast(msg []byte) {
	h.broadcast <- msg
}
