package source

// Source entrega samples de forma cíclica: al llegar al final vuelve al índice 0.
// No se debe llamar Next con Len() == 0.
type Source interface {
	Next() float64
	Reset()
	Len() int
}

// Sequence es un Source sobre un slice inmutable.
type Sequence struct {
	samples []float64
	cursor  int
}

// NewSequence copia samples.
func NewSequence(samples []float64) *Sequence {
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return &Sequence{samples: cp}
}

func (s *Sequence) Next() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	v := s.samples[s.cursor]
	s.cursor++
	if s.cursor >= len(s.samples) {
		s.cursor = 0
	}
	return v
}

func (s *Sequence) Reset() { s.cursor = 0 }

func (s *Sequence) Len() int { return len(s.samples) }

// Cursor es la posición del próximo sample.
func (s *Sequence) Cursor() int { return s.cursor }

// Samples devuelve una copia de la secuencia completa.
func (s *Sequence) Samples() []float64 {
	cp := make([]float64, len(s.samples))
	copy(cp, s.samples)
	return cp
}
