package notify

import (
	"context"
	"sync/atomic"
	"time"
)

// Event types pushed to the admin feed
const (
	EventContactCreated = "contact.created"
	EventContactRead    = "contact.read"
	EventOrderRated     = "order.rated"
	EventOrderStatus    = "order.status"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// Client is one subscriber; C is closed when it is unsubscribed or the hub stops.
type Client struct {
	C    <-chan Event
	send chan Event
}

// Hub fans events out to subscribers. A subscriber whose buffer is full
// misses the event rather than stalling the publisher.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	buffer     int
	dropped    atomic.Int64
	active     atomic.Int64
}

var Default = NewHub(32)

func NewHub(buffer int) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		buffer:     buffer,
	}
}

// Run serves the hub until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			close(c.send)
		}
		h.clients = map[*Client]struct{}{}
		h.active.Store(0)
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.active.Store(int64(len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.active.Store(int64(len(h.clients)))
		case ev := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- ev:
				default:
					h.dropped.Add(1)
				}
			}
		}
	}
}

// Subscribe returns nil once the hub has stopped
func (h *Hub) Subscribe() *Client {
	send := make(chan Event, h.buffer)
	c := &Client{C: send, send: send}
	select {
	case h.register <- c:
		return c
	case <-h.done:
		return nil
	}
}

func (h *Hub) Unsubscribe(c *Client) {
	if c == nil {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish never blocks; events are dropped when the hub is backed up or stopped.
func (h *Hub) Publish(eventType string, data interface{}) {
	ev := Event{Type: eventType, Data: data, At: time.Now().UTC()}
	select {
	case h.broadcast <- ev:
	default:
		h.dropped.Add(1)
	}
}

// Dropped counts events a subscriber or the hub could not take
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Subscribers is the number of connected clients
func (h *Hub) Subscribers() int {
	return int(h.active.Load())
}
