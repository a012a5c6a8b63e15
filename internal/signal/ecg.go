package signal

import (
	"math"
	"math/rand"
)

const (
	DefaultBaseline = 100.0

	// BaseGap es la separación base entre latidos, en samples.
	BaseGap = 25

	// FallbackBeats es el tamaño del dataset sintético de respaldo.
	FallbackBeats = 50
)

// longitudes de cada segmento del complejo
const (
	leadLen = 20
	pLen    = 10
	prLen   = 10
	qLen    = 3
	rLen    = 4
	sLen    = 3
	stLen   = 10
	tLen    = 15
)

// Noise devuelve ruido uniforme en [-1, 1].
type Noise func() float64

// NewNoise adapta un *rand.Rand. Con nil usa una fuente sembrada con seed 1.
func NewNoise(r *rand.Rand) Noise {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return func() float64 { return r.Float64()*2 - 1 }
}

// Silent no agrega ruido.
func Silent() float64 { return 0 }

// Layout son los offsets de cada segmento dentro de un latido.
type Layout struct {
	P, PR, Q, R, S, ST, T int
	Len                   int
}

// LayoutOf calcula el layout del latido para el patrón. P vale -1 si no hay onda P.
func LayoutOf(p Pattern) Layout {
	var l Layout
	off := leadLen
	l.P = -1
	if p.Params().PWave > 0 {
		l.P = off
		off += pLen
	}
	l.PR = off
	off += prLen
	l.Q = off
	off += qLen
	l.R = off
	off += rLen
	l.S = off
	off += sLen
	l.ST = off
	off += stLen
	l.T = off
	off += tLen
	l.Len = off
	return l
}

// Synthesizer genera complejos PQRST con ruido inyectado.
type Synthesizer struct {
	baseline float64
	noise    Noise
}

func NewSynthesizer(baseline float64, noise Noise) *Synthesizer {
	if noise == nil {
		noise = Silent
	}
	return &Synthesizer{baseline: baseline, noise: noise}
}

func (s *Synthesizer) Baseline() float64 { return s.baseline }

// Beat genera un latido completo (sin separación posterior).
func (s *Synthesizer) Beat(p Pattern) []float64 {
	params := p.Params()
	out := make([]float64, 0, LayoutOf(p).Len)
	b := s.baseline

	out = s.flat(out, leadLen, b)

	if params.PWave > 0 {
		for i := 0; i < pLen; i++ {
			out = append(out, b+halfSine(params.PWave, i, pLen)+s.noise())
		}
	}

	out = s.flat(out, prLen, b)

	for i := 0; i < qLen; i++ {
		out = append(out, b-params.QDepth-float64(i*5)+s.noise())
	}

	half := params.RWave / 2
	for i := 0; i < rLen; i++ {
		var a float64
		if i < rLen/2 {
			a = half * float64(i)
		} else {
			a = params.RWave - half*float64(i-rLen/2)
		}
		out = append(out, b+a+s.noise())
	}

	for i := 0; i < sLen; i++ {
		out = append(out, b-params.SDepth+float64(i*10)+s.noise())
	}

	out = s.flat(out, stLen, b+params.STOffset)

	for i := 0; i < tLen; i++ {
		out = append(out, b+halfSine(params.TWave, i, tLen)+s.noise())
	}

	return out
}

// Rhythm concatena numBeats latidos, cada uno seguido de su separación.
func (s *Synthesizer) Rhythm(numBeats int, p Pattern) []float64 {
	if numBeats <= 0 {
		return []float64{}
	}

	out := make([]float64, 0, numBeats*(LayoutOf(p).Len+BaseGap))
	for beat := 0; beat < numBeats; beat++ {
		out = append(out, s.Beat(p)...)
		out = s.flat(out, s.Gap(p), s.baseline)
	}
	return out
}

// Gap sortea la separación (en samples) que sigue a un latido.
func (s *Synthesizer) Gap(p Pattern) int {
	sp := p.spacing()
	factor := sp.center
	if sp.spread > 0 {
		factor += sp.spread * s.noise()
	}
	if factor <= 0 {
		factor = sp.center
	}
	return int(math.Floor(BaseGap * factor))
}

func (s *Synthesizer) flat(out []float64, n int, level float64) []float64 {
	for i := 0; i < n; i++ {
		out = append(out, level+s.noise())
	}
	return out
}

func halfSine(amplitude float64, i, length int) float64 {
	return amplitude * math.Sin(math.Pi*float64(i)/float64(length))
}
