package telemetry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

var (
	// ErrQueueFull is returned when a message cannot be queued in time
	ErrQueueFull = errors.New("telemetry: broadcast queue full")
	// ErrHubClosed is returned after Close
	ErrHubClosed = errors.New("telemetry: hub closed")
)

// Hub fans iteration messages out to websocket clients
type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   logging.Logger

	broadcast chan []byte
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	dropped   atomic.Int64
}

// NewHub starts the broadcaster goroutine
func NewHub(logger logging.Logger) *Hub {
	h := newHub(logger, parameter.TelemetryBroadcastBuffer)
	h.wg.Add(1)
	go h.run()
	return h
}

func newHub(logger logging.Logger, capacity int) *Hub {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		logger:    logger,
		broadcast: make(chan []byte, capacity),
		done:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade: %v", err)
		return
	}

	// Close empties clients under the same lock after closing done
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		conn.Close()
		return
	default:
	}
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Debugf("websocket client connected: %s", r.RemoteAddr)

	// Clients only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

// Publish queues a message for every client, waiting up to
// TelemetryEnqueueTimeout for room in the queue
func (h *Hub) Publish(ctx context.Context, m Message) error {
	data, err := m.JSON()
	if err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(parameter.TelemetryEnqueueTimeout):
		return ErrQueueFull
	}
}

// Observe implements evolve.Observer, dropping the event when the queue is full
func (h *Hub) Observe(ev evolve.Event) {
	data, err := NewMessage(ev).JSON()
	if err != nil {
		h.logger.Warnf("telemetry: encode iteration %d of %s: %v", ev.Iteration, ev.RunID, err)
		return
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
		h.logger.Warnf("telemetry: queue full, dropped iteration %d of %s", ev.Iteration, ev.RunID)
	}
}

// Dropped returns the number of events Observe discarded
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case data := <-h.broadcast:
			h.send(data)
		}
	}
}

// send writes to a snapshot of clients outside the lock
func (h *Hub) send(data []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(parameter.TelemetryWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

// Close disconnects every client and stops the broadcaster
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()

		h.wg.Wait()
	})
	return nil
}

var _ evolve.Observer = (*Hub)(nil)
