package live

import (
	"sync"
)

// Client is one websocket subscriber watching a trip board.
type Client struct {
	Send chan []byte
	Trip string
}

type broadcastMsg struct {
	Trip string
	Data []byte
}

// Hub fans board events out to every subscriber of a trip. Subscribers
// are read-only: the board has a single logical writer and the feed
// only mirrors committed mutations.
type Hub struct {
	trips      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		trips:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.trips[c.Trip] == nil {
				h.trips[c.Trip] = make(map[*Client]bool)
			}
			h.trips[c.Trip][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			// The broadcast branch may already have dropped this
			// client; only close Send once.
			if conns := h.trips[c.Trip]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.trips[m.Trip] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.trips[m.Trip], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register adds a subscriber for a trip.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister drops a subscriber and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast delivers data to every subscriber of the trip. Slow
// clients are dropped rather than blocking the hub.
func (h *Hub) Broadcast(tripID string, data []byte) {
	h.broadcast <- broadcastMsg{Trip: tripID, Data: data}
}
