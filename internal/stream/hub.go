// Package stream serves running maps to websocket clients. The simulation
// goroutine publishes frames and drains commands; the hub never touches a
// component itself.
package stream

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const commandBuffer = 64

// Hub fans frames out to every connected client and collects the commands
// they send.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	last    map[int]Frame

	commands chan Command
}

// NewHub returns a hub accepting connections from any origin.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log: log.With("component", "stream"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		last:     make(map[int]Frame),
		commands: make(chan Command, commandBuffer),
	}
}

// Commands delivers client commands. The simulation goroutine applies them.
func (h *Hub) Commands() <-chan Command { return h.commands }

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request, replays the latest frame of every map
// and then reads commands until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = connMu
	replay := make([]Frame, 0, len(h.last))
	for _, f := range h.last {
		replay = append(replay, f)
	}
	h.mu.Unlock()
	defer h.drop(conn)
	h.log.Debug("client connected", "remote", r.RemoteAddr)

	connMu.Lock()
	for _, f := range sortFrames(replay) {
		if err := conn.WriteJSON(f); err != nil {
			connMu.Unlock()
			return
		}
	}
	connMu.Unlock()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("websocket read failed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
			h.log.Warn("command dropped, queue full", "op", cmd.Op, "map", cmd.Map)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Publish remembers f as the latest frame of its map and sends it to every
// client. Clients that fail to receive it are disconnected.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	h.last[f.Map] = f
	h.mu.Unlock()

	var failed []*websocket.Conn
	h.mu.RLock()
	for conn, connMu := range h.clients {
		connMu.Lock()
		err := conn.WriteJSON(f)
		connMu.Unlock()
		if err != nil {
			h.log.Debug("websocket write failed", "err", err)
			failed = append(failed, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range failed {
		conn.Close()
		h.drop(conn)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
