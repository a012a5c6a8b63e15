package source

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ecegroup2/projectweb/internal/signal"
)

// Advisory es el texto que reemplaza al indicador de carga cuando se usan datos sintéticos.
const Advisory = "Failed to load ECG data. Using mock data."

type Fetcher interface {
	Fetch(ctx context.Context) (*Sequence, error)
}

// Result es lo que queda disponible después de una carga.
type Result struct {
	Source    *Sequence
	Synthetic bool
	Advisory  string
	Err       error
}

// Loader intenta el fetch remoto y, ante cualquier error, genera datos sintéticos nuevos.
// Load puede llamarse desde varios goroutines a la vez.
type Loader struct {
	mu      sync.Mutex // protege el ruido del sintetizador
	fetcher Fetcher
	synth   *signal.Synthesizer
	pattern signal.Pattern
	beats   int
	log     *slog.Logger
}

func NewLoader(fetcher Fetcher, synth *signal.Synthesizer, pattern signal.Pattern, beats int, log *slog.Logger) *Loader {
	if beats <= 0 {
		beats = signal.FallbackBeats
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{fetcher: fetcher, synth: synth, pattern: pattern, beats: beats, log: log}
}

// Load nunca falla. Sin fetcher configurado va directo a datos sintéticos y sin advisory.
func (l *Loader) Load(ctx context.Context) Result {
	if l.fetcher == nil {
		return Result{Source: l.Synthetic(), Synthetic: true}
	}

	seq, err := l.fetcher.Fetch(ctx)
	if err == nil {
		l.log.Info("ecg data loaded", "samples", seq.Len())
		return Result{Source: seq}
	}

	l.log.Warn("error fetching ECG data, using synthetic data", "error", err, "pattern", l.pattern)
	return Result{
		Source:    l.Synthetic(),
		Synthetic: true,
		Advisory:  Advisory,
		Err:       err,
	}
}

// Synthetic genera una secuencia nueva cada vez.
func (l *Loader) Synthetic() *Sequence {
	l.mu.Lock()
	defer l.mu.Unlock()
	return NewSequence(l.synth.Rhythm(l.beats, l.pattern))
}
