package anim

import (
	"context"
	"sync"
	"time"
)

// FrameID identifica un callback de frame pendiente. 0 nunca es un id válido.
type FrameID uint64

// Host es el dueño de la cadencia de redibujo. Todos los callbacks corren
// en un único goroutine, uno a la vez.
type Host interface {
	// RequestFrame agenda fn para el próximo frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame descarta un callback pendiente; ids viejos se ignoran.
	CancelFrame(id FrameID)
	// Post ejecuta fn en el goroutine del host.
	Post(fn func())
}

type frames struct {
	next    FrameID
	pending map[FrameID]func()
	order   []FrameID
}

func (f *frames) request(fn func()) FrameID {
	if f.pending == nil {
		f.pending = make(map[FrameID]func())
	}
	f.next++
	f.pending[f.next] = fn
	f.order = append(f.order, f.next)
	return f.next
}

func (f *frames) cancel(id FrameID) {
	delete(f.pending, id)
}

// take devuelve los callbacks pendientes en orden y vacía la cola.
func (f *frames) take() []func() {
	var out []func()
	for _, id := range f.order {
		if fn, ok := f.pending[id]; ok {
			out = append(out, fn)
		}
	}
	f.pending = nil
	f.order = f.order[:0]
	return out
}

// TickerHost emula requestAnimationFrame con un time.Ticker.
type TickerHost struct {
	interval time.Duration

	mu     sync.Mutex
	frames frames
	posts  chan func()
}

func NewTickerHost(interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerHost{interval: interval, posts: make(chan func(), 64)}
}

func (h *TickerHost) RequestFrame(fn func()) FrameID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames.request(fn)
}

func (h *TickerHost) CancelFrame(id FrameID) {
	h.mu.Lock()
	h.frames.cancel(id)
	h.mu.Unlock()
}

// Post encola fn; bloquea si la cola está llena.
func (h *TickerHost) Post(fn func()) {
	h.posts <- fn
}

// Do ejecuta fn en el host y espera a que termine. No llamar desde el goroutine del host.
func (h *TickerHost) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case h.posts <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run procesa frames y posts hasta que ctx se cancela.
func (h *TickerHost) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case fn := <-h.posts:
			fn()

		case <-ticker.C:
			h.mu.Lock()
			due := h.frames.take()
			h.mu.Unlock()

			for _, fn := range due {
				fn()
			}
		}
	}
}

// ManualHost avanza sólo cuando se llama Step. Post ejecuta en línea.
type ManualHost struct {
	frames frames
}

func NewManualHost() *ManualHost { return &ManualHost{} }

func (h *ManualHost) RequestFrame(fn func()) FrameID { return h.frames.request(fn) }

func (h *ManualHost) CancelFrame(id FrameID) { h.frames.cancel(id) }

func (h *ManualHost) Post(fn func()) { fn() }

// Step corre un frame y devuelve cuántos callbacks ejecutó.
func (h *ManualHost) Step() int {
	due := h.frames.take()
	for _, fn := range due {
		fn()
	}
	return len(due)
}

// Pending es la cantidad de callbacks agendados.
func (h *ManualHost) Pending() int { return len(h.frames.pending) }
