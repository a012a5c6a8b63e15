package main

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ecegroup2/projectweb/internal/display"
	"github.com/ecegroup2/projectweb/internal/stream"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub reparte a los clientes websocket una instantánea de la ventana por frame
// (binario) y los parámetros que publica el processor (texto).
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool

	frames  chan []byte
	params  chan []byte
	sent    atomic.Int64
	dropped atomic.Int64
}

func newHub() *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		frames: make(chan []byte, 8),
		params: make(chan []byte, 8),
	}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	clients := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	return clients
}

// onFrame corre en el host: nunca bloquea, descarta si el broadcaster va atrasado.
func (h *Hub) onFrame(f display.Frame) {
	if h.count() == 0 {
		return
	}
	select {
	case h.frames <- stream.EncodeFrame(f.Values):
	default:
		h.dropped.Add(1)
	}
}

// onParams recibe los mensajes de ecg.params; igual que onFrame, no bloquea.
func (h *Hub) onParams(b []byte) {
	if h.count() == 0 {
		return
	}
	select {
	case h.params <- b:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.snapshot() {
				_ = c.Close()
				h.remove(c)
			}
			return
		case b := <-h.frames:
			h.broadcast(websocket.BinaryMessage, b)
		case b := <-h.params:
			h.broadcast(websocket.TextMessage, b)
		}
	}
}

func (h *Hub) broadcast(kind int, b []byte) {
	for _, c := range h.snapshot() {
		_ = c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(kind, b); err != nil {
			_ = c.Close()
			h.remove(c)
			continue
		}
		h.sent.Add(1)
	}
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.add(conn)
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
