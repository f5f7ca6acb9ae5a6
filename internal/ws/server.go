package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"spiceroute-services/internal/config"
	"spiceroute-services/internal/http/handlers"
	"spiceroute-services/internal/jsonstore"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server pushes order snapshots to connected dashboards. It watches the
// orders file's modification time and broadcasts the full order list whenever
// it changes, so kitchen displays converge without polling the REST API.
type Server struct {
	Store  *jsonstore.Store
	Logger *zap.Logger
	Config config.Config

	started sync.Once
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func New(store *jsonstore.Store, logger *zap.Logger, cfg config.Config) *Server {
	return &Server{
		Store:   store,
		Logger:  logger,
		Config:  cfg,
		clients: make(map[*client]struct{}),
	}
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(value)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

type ordersMessage struct {
	Type   string           `json:"type"`
	Orders []handlers.Order `json:"orders"`
}

// HandleOrders upgrades the connection, sends the current snapshot, and keeps
// the client subscribed until it disconnects.
func (s *Server) HandleOrders(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	s.started.Do(func() {
		go s.watchLoop(context.Background())
	})

	cl := &client{conn: conn}
	s.mu.Lock()
	s.clients[cl] = struct{}{}
	s.mu.Unlock()

	if snapshot, ok := s.loadSnapshot(); ok {
		_ = cl.writeJSON(snapshot)
	}

	go s.heartbeatLoop(cl)

	// Reads are discarded; the loop exists to notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(cl)
}

func (s *Server) drop(cl *client) {
	_ = cl.conn.Close()
	s.mu.Lock()
	delete(s.clients, cl)
	s.mu.Unlock()
}

func (s *Server) heartbeatLoop(cl *client) {
	interval := s.Config.WSHeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := cl.ping(); err != nil {
			s.drop(cl)
			return
		}
	}
}

func (s *Server) watchLoop(ctx context.Context) {
	interval := s.Config.WSOrdersPollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var lastMod time.Time
	if mod, err := s.Store.ModTime(handlers.FileOrders); err == nil {
		lastMod = mod
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		mod, err := s.Store.ModTime(handlers.FileOrders)
		if err != nil || !mod.After(lastMod) {
			continue
		}
		lastMod = mod

		snapshot, ok := s.loadSnapshot()
		if !ok {
			continue
		}
		s.broadcast(snapshot)
	}
}

func (s *Server) loadSnapshot() (ordersMessage, bool) {
	var file handlers.OrdersFile
	if err := s.Store.Load(handlers.FileOrders, &file); err != nil {
		return ordersMessage{}, false
	}
	if file.Orders == nil {
		file.Orders = []handlers.Order{}
	}
	return ordersMessage{Type: "orders.snapshot", Orders: file.Orders}, true
}

func (s *Server) broadcast(msg ordersMessage) {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(msg); err != nil {
			s.drop(c)
		}
	}
}
