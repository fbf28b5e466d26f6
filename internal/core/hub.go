package core

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/atomic"
)

const writeWait = 10 * time.Second

// Client is the server side of one websocket session. It owns the binding
// of that session to at most one (room, seat) pair. Outbound traffic goes
// through a buffered channel drained by a single writer goroutine, so state
// mutation never blocks on a slow peer.
type Client struct {
	ID string

	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	alive     *atomic.Bool
	closeOnce sync.Once

	mu       sync.Mutex
	bound    bool
	roomCode string
	seat     int
}

// Bind records the seat this connection occupies.
func (c *Client) Bind(roomCode string, seat int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bound = true
	c.roomCode = roomCode
	c.seat = seat
}

// ClearBinding detaches the connection from its seat.
func (c *Client) ClearBinding() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bound = false
	c.roomCode = ""
	c.seat = 0
}

// Binding returns the current (room, seat) pair, if any.
func (c *Client) Binding() (roomCode string, seat int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomCode, c.seat, c.bound
}

// Send queues a payload for delivery. A full buffer means the peer stopped
// draining; that counts as connection death, no retry.
func (c *Client) Send(payload []byte) {
	select {
	case c.send <- payload:
	default:
		log.Warn().Str("conn_id", c.ID).Msg("send buffer full, terminating")
		c.Terminate()
	}
}

// Terminate tears the socket down. The read loop unwinds with an error and
// runs the ordinary disconnect path.
func (c *Client) Terminate() {
	_ = c.conn.Close()
}

// shutdown stops the writer. The send channel itself is never closed, so a
// broadcast racing a disconnect can at worst queue into a drained buffer.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			deadline := time.Now().Add(time.Second)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		}
	}
}

// Hub tracks every live connection, fans broadcasts out to rooms, and runs
// the liveness monitor that reclaims connections which stop answering pings.
type Hub struct {
	interval time.Duration
	buffer   int

	mu      sync.Mutex
	clients map[*Client]struct{}

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewHub(cfg *Config) *Hub {
	h := &Hub{
		interval: cfg.PingInterval,
		buffer:   cfg.SendBuffer,
		clients:  make(map[*Client]struct{}),
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.livenessLoop()
	return h
}

// Register wraps an upgraded websocket in a Client and starts its writer.
// The pong handler confirms liveness for the monitor.
func (h *Hub) Register(conn *websocket.Conn, id string) *Client {
	c := &Client{
		ID:    id,
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, h.buffer),
		done:  make(chan struct{}),
		alive: atomic.NewBool(true),
	}
	conn.SetPongHandler(func(string) error {
		c.alive.Store(true)
		return nil
	})

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	return c
}

// Unregister drops the client from liveness tracking and shuts its writer
// down. Seat cleanup is the dispatcher's job, not the hub's.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	c.shutdown()
}

// Broadcast serializes the message once and fans it out to every occupied
// seat. Delivery failures are isolated per recipient and never reported
// upward.
func (h *Hub) Broadcast(room *Room, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("code", room.Code).Msg("broadcast marshal failed")
		return
	}
	iter.ForEach(room.Recipients(), func(c **Client) {
		(*c).Send(payload)
	})
}

// Stop halts the liveness loop and terminates every connection.
func (h *Hub) Stop() {
	close(h.stopCh)
	h.wg.Wait()

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.Terminate()
	}
}

// livenessLoop probes every tracked connection once per interval. A
// connection that never confirmed the previous probe is torn down, which
// feeds the same disconnect path as a clean close.
func (h *Hub) livenessLoop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.probeAll()
		case <-h.stopCh:
			return
		}
	}
}

func (h *Hub) probeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if !c.alive.Load() {
			log.Warn().Str("conn_id", c.ID).Msg("heartbeat missed, evicting")
			c.Terminate()
			continue
		}
		c.alive.Store(false)
		deadline := time.Now().Add(writeWait)
		if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			c.Terminate()
		}
	}
}
