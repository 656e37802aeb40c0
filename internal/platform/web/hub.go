// Package web streams a running game to websocket spectators as
// msgpack-encoded frames.
package web

import (
	"context"
	"sync/atomic"
)

const sendBufSize = 16

// Hub tracks spectators and fans frames out to them. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	latest     []byte
	count      atomic.Int64
	done       chan struct{}
}

// NewHub creates an idle hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 8),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			close(h.done)
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			if h.latest != nil {
				h.deliver(c, h.latest)
			}

		case c := <-h.unregister:
			h.drop(c)

		case frame := <-h.broadcast:
			h.latest = frame
			for c := range h.clients {
				h.deliver(c, frame)
			}
		}
	}
}

// deliver queues frame for c, dropping spectators that fall behind.
func (h *Hub) deliver(c *Client, frame []byte) {
	select {
	case c.send <- frame:
	default:
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	h.count.Store(int64(len(h.clients)))
	close(c.send)
}

// Register adds a spectator. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a spectator.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a frame for every connected spectator. Late joiners
// receive the most recent frame first.
func (h *Hub) Broadcast(ctx context.Context, frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-ctx.Done():
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
