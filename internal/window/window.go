// Package window implementa la ventana visible del trazo: un FIFO acotado
// donde cada push con la ventana llena descarta el sample más viejo.
package window

import "math"

// Capacity cuántos samples entran en pixelWidth avanzando advance píxeles por sample.
func Capacity(pixelWidth int, advance float64) int {
	if pixelWidth <= 0 || advance <= 0 {
		return 0
	}
	return int(math.Floor(float64(pixelWidth) / advance))
}

// Window es un ring buffer de float64. No es seguro para uso concurrente.
type Window struct {
	buf  []float64
	head int // posición del sample más viejo
	n    int
}

func New(capacity int) *Window {
	if capacity < 0 {
		capacity = 0
	}
	return &Window{buf: make([]float64, capacity)}
}

func (w *Window) Len() int { return w.n }

func (w *Window) Cap() int { return len(w.buf) }

// Push agrega v; con la ventana llena descarta primero el más viejo.
func (w *Window) Push(v float64) {
	c := len(w.buf)
	if c == 0 {
		return
	}
	if w.n < c {
		w.buf[(w.head+w.n)%c] = v
		w.n++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % c
}

// At devuelve el i-ésimo sample, 0 es el más viejo.
func (w *Window) At(i int) float64 {
	if i < 0 || i >= w.n {
		panic("window: index out of range")
	}
	return w.buf[(w.head+i)%len(w.buf)]
}

// Values copia el contenido en orden de llegada.
func (w *Window) Values() []float64 {
	out := make([]float64, w.n)
	for i := range out {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

func (w *Window) Clear() {
	w.head = 0
	w.n = 0
}

// Resize cambia la capacidad conservando los samples más nuevos.
func (w *Window) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity == len(w.buf) {
		return
	}
	vals := w.Values()
	if len(vals) > capacity {
		vals = vals[len(vals)-capacity:]
	}
	w.buf = make([]float64, capacity)
	copy(w.buf, vals)
	w.head = 0
	w.n = len(vals)
}

// Range devuelve mínimo y máximo; ok es false con la ventana vacía.
func (w *Window) Range() (lo, hi float64, ok bool) {
	if w.n == 0 {
		return 0, 0, false
	}
	lo, hi = w.At(0), w.At(0)
	for i := 1; i < w.n; i++ {
		v := w.At(i)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}
