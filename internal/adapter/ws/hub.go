package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"warped/internal/app/status"
	"warped/internal/domain/sim"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub fans state snapshots out to every connected browser.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	connected  atomic.Int64
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    map[*client]bool{},
		broadcast:  make(chan []byte, 1),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws").Logger(),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.log.Info().Msg("hub stopped")
			return
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
			h.log.Info().Str("client_id", c.id).Msg("client connected")
		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				h.log.Info().Str("client_id", c.id).Msg("client disconnected")
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn().Str("client_id", c.id).Msg("client too slow, dropping")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.connected.Add(-1)
}

func (h *Hub) Clients() int { return int(h.connected.Load()) }

// Publish queues msg for broadcast. A pending message is replaced, so slow
// ticks never back up the caller.
func (h *Hub) Publish(msg []byte) {
	for {
		select {
		case h.broadcast <- msg:
			return
		default:
		}
		select {
		case <-h.broadcast:
		default:
		}
	}
}

// Observer pushes the client view of g after each notification, at most once
// per interval.
func (h *Hub) Observer(g *sim.Game, interval time.Duration) sim.Observer {
	var last time.Time
	return func(*sim.State) {
		if h.Clients() == 0 {
			return
		}
		now := time.Now()
		if interval > 0 && now.Sub(last) < interval {
			return
		}
		last = now
		b, err := json.Marshal(status.Snapshot(g))
		if err != nil {
			h.log.Error().Err(err).Msg("encode state")
			return
		}
		h.Publish(b)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	c := &client{id: uuid.NewString(), hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
