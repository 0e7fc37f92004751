package view

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/niloxx/davil/internal/monitoring"
)

// WebSocket timeout constants following Gorilla best practices.
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Per-client buffered frames before the client is considered stalled
	clientSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The server binds locally; cross-origin drags from the served page
	// are the expected clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DragMessage is the inbound websocket payload: one axis drag event.
type DragMessage struct {
	AxisID string  `json:"axis_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Hub fans render-buffer frames out to connected websocket clients and
// feeds their drag events into the view. The hub is the only concurrent
// observer of the view; the view itself serializes all mutation.
type Hub struct {
	view *StarView

	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub for the given view.
func NewHub(view *StarView) *Hub {
	return &Hub{
		view:    view,
		clients: make(map[*client]bool),
	}
}

// Broadcast marshals one frame and queues it to every connected client.
// Clients that cannot keep up are dropped rather than blocking the
// recompute path.
func (h *Hub) Broadcast(frame map[string]any) {
	payload, err := json.Marshal(frame)
	if err != nil {
		monitoring.Logf("failed to marshal frame: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			monitoring.Logf("dropping stalled websocket client")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// HandleWebSocket upgrades the connection and starts the client pumps.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		monitoring.Logf("websocket upgrade failed: %v", err)
		return
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump decodes drag messages and applies them to the view. Errors are
// reported back to the sender; state stays unchanged on a bad axis id.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				monitoring.Logf("websocket read error: %v", err)
			}
			return
		}
		var msg DragMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.sendError(c, "invalid drag message")
			continue
		}
		if err := h.view.DragAxis(msg.AxisID, msg.X, msg.Y); err != nil {
			h.sendError(c, err.Error())
		}
	}
}

func (h *Hub) sendError(c *client, msg string) {
	payload, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// writePump drains the client's send queue and keeps the connection alive
// with pings.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
