package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/rosview/pkg/observability"
)

// writeWait bounds a single WebSocket write. A client that stops reading
// is dropped once its socket buffers are full.
var writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// message is pushed to WebSocket clients.
type message struct {
	Type     string `json:"type"`
	Revision string `json:"revision"`
}

// conn serializes writes to one WebSocket connection. gorilla/websocket
// allows one concurrent writer per connection.
type conn struct {
	c       *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.c.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.c.WriteMessage(websocket.TextMessage, data)
}

// hub tracks connected clients.
type hub struct {
	mu      sync.Mutex
	clients map[*conn]struct{}
	logger  *log.Logger
}

func newHub(logger *log.Logger) *hub {
	return &hub{clients: make(map[*conn]struct{}), logger: logger}
}

func (h *hub) add(c *conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *hub) snapshot() []*conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*conn, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// broadcast sends msg to every client. Clients that fail are dropped.
func (h *hub) broadcast(ctx context.Context, msg message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	clients := h.snapshot()
	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.logger.Debug("dropping websocket client", "err", err)
			h.remove(c)
			_ = c.c.Close()
		}
	}
	observability.Server().OnBroadcast(ctx, msg.Type, len(clients))
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot() {
		h.remove(c)
		_ = c.c.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &conn{c: ws}
	s.hub.add(c)
	defer func() {
		s.hub.remove(c)
		_ = ws.Close()
	}()

	s.mu.Lock()
	hello := message{Type: "hello", Revision: s.mgr.Revision()}
	s.mu.Unlock()
	if data, err := json.Marshal(hello); err == nil {
		if err := c.write(data); err != nil {
			return
		}
	}

	// Clients only listen; reading detects disconnects.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
