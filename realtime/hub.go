// Package realtime pushes "state changed" hints to websocket clients that
// joined the leaderboard topic. Clients re-fetch over REST on each hint.
package realtime

import (
	"context"
	"encoding/json"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/prometheus/client_golang/prometheus"
	"sync/atomic"
)

const Topic = "leaderboard"

const (
	eventSubscribed   = "subscribed"
	eventUnsubscribed = "unsubscribed"
)

// Frame is the only message shape the server sends.
type Frame struct {
	Event string `json:"event"`
	Topic string `json:"topic,omitempty"`
}

var (
	connectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "podium_ws_clients",
		Help: "Open websocket connections",
	})
	hintsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "podium_ws_hints_total",
		Help: "Change hints fanned out to subscribers",
	}, []string{"event"})
	slowClientsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "podium_ws_dropped_clients_total",
		Help: "Clients disconnected because their send buffer was full",
	})
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{connectedClients, hintsSent, slowClientsDropped}
}

// Hub owns the client set. All membership changes go through Run.
type Hub struct {
	clients     map[*Client]bool
	subscribers map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan *Client
	leave      chan *Client
	broadcast  chan Frame
	done       chan struct{}

	subscribed atomic.Int64
	// AllowedOrigins limits websocket upgrades. Empty or "*" accepts any origin.
	AllowedOrigins []string
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		subscribers: make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		join:        make(chan *Client),
		leave:       make(chan *Client),
		broadcast:   make(chan Frame, 64),
		done:        make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
		logging.Log.Info("HUB: stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			connectedClients.Inc()
			logging.Log.Debugf("HUB: client %s connected (%d open)", c.id, len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				logging.Log.Debugf("HUB: client %s disconnected (%d open)", c.id, len(h.clients))
			}

		case c := <-h.join:
			if h.clients[c] && !h.subscribers[c] {
				h.subscribers[c] = true
				h.subscribed.Store(int64(len(h.subscribers)))
			}
			h.deliver(c, Frame{Event: eventSubscribed, Topic: Topic})

		case c := <-h.leave:
			if h.subscribers[c] {
				delete(h.subscribers, c)
				h.subscribed.Store(int64(len(h.subscribers)))
			}
			h.deliver(c, Frame{Event: eventUnsubscribed, Topic: Topic})

		case f := <-h.broadcast:
			hintsSent.WithLabelValues(f.Event).Inc()
			for c := range h.subscribers {
				h.deliver(c, f)
			}
		}
	}
}

// deliver never blocks. A client that cannot keep up is dropped.
func (h *Hub) deliver(c *Client, f Frame) {
	if !h.clients[c] {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		logging.Log.Errorf("HUB: failed to encode frame: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		slowClientsDropped.Inc()
		logging.Log.Warnf("HUB: dropping slow client %s", c.id)
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	delete(h.subscribers, c)
	h.subscribed.Store(int64(len(h.subscribers)))
	connectedClients.Dec()
	close(c.send)
}

// Notify queues a hint for every subscriber. It never blocks the caller; when
// the queue is full the hint is dropped, since clients also poll.
func (h *Hub) Notify(event string) {
	select {
	case h.broadcast <- Frame{Event: event, Topic: Topic}:
	case <-h.done:
	default:
		logging.Log.Warnf("HUB: broadcast queue full, dropping %s", event)
	}
}

// Subscribers reports how many clients joined the topic.
func (h *Hub) Subscribers() int {
	return int(h.subscribed.Load())
}

// enqueue hands c to the Run loop unless the hub already stopped.
func (h *Hub) enqueue(ch chan *Client, c *Client) bool {
	select {
	case ch <- c:
		return true
	case <-h.done:
		return false
	}
}
