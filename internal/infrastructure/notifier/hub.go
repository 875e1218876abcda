package notifier

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 16
)

var ErrHubClosed = crerr.New("websocket hub is closed")

// Message is the frame written to stream subscribers.
type Message struct {
	Type    string                    `json:"type"`
	Payload notification.Notification `json:"payload"`
}

type hubClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans notifications out to every connected websocket client. Run must be
// started before clients connect.
type Hub struct {
	register   chan *hubClient
	unregister chan *hubClient
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	clients map[*hubClient]struct{}
	count   atomic.Int64

	upgrader websocket.Upgrader
	logger   *logging.Logger
}

type HubConfig struct {
	AllowedOrigins []string
	Logger         *logging.Logger
}

func NewHub(cfg HubConfig) *Hub {
	h := &Hub{
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
		broadcast:  make(chan []byte, clientBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*hubClient]struct{}),
		logger:     logging.OrDefault(cfg.Logger).Named("notifier.websocket"),
	}
	origins := normalizeOrigins(cfg.AllowedOrigins)
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(origins, r.Header.Get("Origin"))
		},
	}
	return h
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.count.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("websocket client registered", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Debug("websocket client unregistered", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("websocket client send buffer full, dropping client")
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// Clients reports the number of connected subscribers.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

func (h *Hub) Name() string { return "websocket" }

func (h *Hub) CanNotify() bool { return h.Clients() > 0 }

func (h *Hub) Send(ctx context.Context, item notification.Notification) error {
	payload, err := sonic.Marshal(Message{Type: "notification", Payload: item})
	if err != nil {
		return crerr.Wrap(err, "marshal websocket message")
	}
	select {
	case h.broadcast <- payload:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return crerr.Wrap(err, "upgrade websocket")
	}
	client := &hubClient{hub: h, conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return ErrHubClosed
	}

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump only tracks liveness; subscribers never send anything meaningful.
func (c *hubClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
	}
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Warn("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// originAllowed accepts same-origin requests (no Origin header), a wildcard
// entry, or an exact match.
func originAllowed(allowed []string, origin string) bool {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return true
	}
	for _, candidate := range allowed {
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}
