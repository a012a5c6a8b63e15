package stream

import "log/slog"

// Sink recibe lotes de samples.
type Sink interface {
	Publish(samples []float64) error
}

// Tap junta samples de a uno y los entrega a las sinks en lotes de batch.
// Se usa desde el goroutine del host: no es seguro para uso concurrente.
type Tap struct {
	batch  int
	buf    []float64
	sinks  []Sink
	log    *slog.Logger
	errors int
}

func NewTap(batch int, log *slog.Logger, sinks ...Sink) *Tap {
	if batch <= 0 {
		batch = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tap{batch: batch, buf: make([]float64, 0, batch), sinks: sinks, log: log}
}

func (t *Tap) Add(v float64) {
	t.buf = append(t.buf, v)
	if len(t.buf) >= t.batch {
		t.Flush()
	}
}

// Flush publica lo acumulado. Los errores se registran y no cortan el loop.
func (t *Tap) Flush() {
	if len(t.buf) == 0 {
		return
	}
	for _, s := range t.sinks {
		if err := s.Publish(t.buf); err != nil {
			t.errors++
			t.log.Warn("publish failed", "error", err, "samples", len(t.buf))
		}
	}
	t.buf = t.buf[:0]
}

// Errors cuenta los publish fallidos.
func (t *Tap) Errors() int { return t.errors }
