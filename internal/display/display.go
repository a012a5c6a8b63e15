// Package display agrupa fuente, ventana, scheduler y renderer de un trazo.
//
// Un Display se usa desde el goroutine de su anim.Host: los controles, los
// ticks y la aplicación de un fetch corren ahí, uno a la vez.
package display

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ecegroup2/projectweb/internal/anim"
	"github.com/ecegroup2/projectweb/internal/config"
	"github.com/ecegroup2/projectweb/internal/render"
	"github.com/ecegroup2/projectweb/internal/signal"
	"github.com/ecegroup2/projectweb/internal/source"
	"github.com/ecegroup2/projectweb/internal/window"
)

// Resizer es una superficie que puede cambiar de tamaño.
type Resizer interface {
	Resize(width, height int)
}

// Frame es lo que ven los hooks después de cada tick que consumió un sample.
type Frame struct {
	Sample float64
	Values []float64
}

type FrameHook func(Frame)

type Option func(*Display)

func WithSurface(s render.Surface) Option {
	return func(d *Display) { d.surface = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Display) { d.log = l }
}

func WithFrameHook(fn FrameHook) Option {
	return func(d *Display) { d.hooks = append(d.hooks, fn) }
}

// WithFetcher reemplaza el cliente HTTP armado desde la configuración.
func WithFetcher(f source.Fetcher) Option {
	return func(d *Display) { d.fetcher = f }
}

// WithNoise fija el ruido del sintetizador (tests y modo demo).
func WithNoise(n signal.Noise) Option {
	return func(d *Display) { d.noise = n }
}

type Display struct {
	id  uuid.UUID
	cfg config.DisplayConfig
	log *slog.Logger

	host     anim.Host
	sched    *anim.Scheduler
	win      *window.Window
	renderer *render.Renderer
	surface  render.Surface
	hooks    []FrameHook

	noise   signal.Noise
	fetcher source.Fetcher
	synth   *signal.Synthesizer
	loader  *source.Loader

	src       source.Source
	loading   bool
	synthetic bool
	advisory  string
	lastErr   error
	fetches   int // tickets entregados
	applied   int // último ticket aplicado
	closed    bool
	width     int
	height    int
}

func New(cfg *config.Config, host anim.Host, opts ...Option) *Display {
	d := &Display{
		id:      uuid.New(),
		cfg:     cfg.Display,
		host:    host,
		loading: true,
		width:   cfg.Display.Width,
		height:  cfg.Display.Height,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	d.log = d.log.With("display", d.id.String())

	if d.noise == nil {
		seed := cfg.Source.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		d.noise = signal.NewNoise(rand.New(rand.NewSource(seed)))
	}
	if d.fetcher == nil && cfg.Source.APIURL != "" {
		d.fetcher = source.NewClient(cfg.Source.APIURL, cfg.Source.Timeout)
	}

	d.synth = signal.NewSynthesizer(signal.DefaultBaseline, d.noise)
	d.loader = source.NewLoader(d.fetcher, d.synth, signal.ParsePattern(cfg.Source.Pattern), cfg.Source.Beats, d.log)

	if d.surface != nil {
		d.width, d.height = d.surface.Width(), d.surface.Height()
	}
	d.win = window.New(window.Capacity(d.width, d.cfg.AnimationSpeed))
	d.renderer = render.NewRenderer(render.Style{
		LineColor:       d.cfg.LineColor,
		LineWidth:       d.cfg.LineWidth,
		BackgroundColor: d.cfg.BackgroundColor,
		GridColor:       d.cfg.GridColor,
		GridSize:        d.cfg.GridSize,
		Advance:         d.cfg.AnimationSpeed,
	})
	d.sched = anim.NewScheduler(host, d.tick)

	return d
}

func (d *Display) ID() uuid.UUID { return d.id }

// Load hace el fetch de forma bloqueante y aplica el resultado.
func (d *Display) Load(ctx context.Context) source.Result {
	ticket := d.BeginFetch()
	res := d.Resolve(ctx)
	d.Apply(ticket, res)
	return res
}

// Fetch lanza el fetch en otro goroutine; la animación sigue con los datos
// actuales hasta que el resultado se aplica en el host. El canal se cierra
// cuando el resultado llegó al host, se haya aplicado o no.
func (d *Display) Fetch(ctx context.Context) <-chan struct{} {
	ticket := d.BeginFetch()
	done := make(chan struct{})
	go func() {
		res := d.Resolve(ctx)
		d.host.Post(func() {
			d.Apply(ticket, res)
			close(done)
		})
	}()
	return done
}

// BeginFetch numera un fetch nuevo y marca el display como cargando si
// todavía no tiene datos. Hosts que manejan su propia asincronía llaman
// BeginFetch, Resolve fuera del host y después Apply en el host con el
// mismo ticket.
func (d *Display) BeginFetch() int {
	d.fetches++
	if d.src == nil || d.src.Len() == 0 {
		d.loading = true
	}
	return d.fetches
}

// Resolve corre el fetch (o el respaldo sintético). Puede llamarse fuera del
// goroutine del host, también con varios fetch en vuelo.
func (d *Display) Resolve(ctx context.Context) source.Result {
	return d.loader.Load(ctx)
}

// Apply instala el resultado de un fetch: vacía la ventana y arranca el loop.
// Un resultado más viejo que el último aplicado se descarta y Apply devuelve false.
func (d *Display) Apply(ticket int, res source.Result) bool {
	if d.closed || ticket <= d.applied {
		d.log.Debug("stale ecg source dropped", "ticket", ticket, "applied", d.applied)
		return false
	}
	d.applied = ticket
	d.src = res.Source
	d.synthetic = res.Synthetic
	d.advisory = res.Advisory
	d.lastErr = res.Err
	d.loading = false

	d.win.Clear()
	d.src.Reset()

	if res.Synthetic {
		// el respaldo siempre reinicia la animación
		d.sched.Start()
	} else if !d.sched.Running() {
		d.sched.Start()
	}
	d.log.Info("ecg source ready", "samples", d.src.Len(), "synthetic", res.Synthetic, "ticket", ticket)
	return true
}

// Start arranca el loop (idempotente).
func (d *Display) Start() {
	if d.closed {
		return
	}
	d.sched.Start()
}

func (d *Display) Stop() { d.sched.Stop() }

// Toggle alterna entre Running y Stopped y devuelve si quedó corriendo.
func (d *Display) Toggle() bool {
	if d.sched.Running() {
		d.Stop()
	} else {
		d.Start()
	}
	return d.sched.Running()
}

// Reset vacía la ventana, rebobina la fuente y arranca el loop si estaba detenido.
func (d *Display) Reset() {
	d.win.Clear()
	if d.src != nil {
		d.src.Reset()
	}
	if !d.sched.Running() {
		d.Start()
	}
}

// Resize recalcula la capacidad de la ventana y redibuja.
func (d *Display) Resize(width, height int) {
	d.width, d.height = width, height
	if r, ok := d.surface.(Resizer); ok {
		r.Resize(width, height)
	}
	d.win.Resize(window.Capacity(width, d.cfg.AnimationSpeed))
	d.redraw()
}

// OnFrame agrega un hook que corre después de cada tick.
func (d *Display) OnFrame(fn FrameHook) {
	if d.closed {
		return
	}
	d.hooks = append(d.hooks, fn)
}

// Close detiene el loop; el display no vuelve a arrancar.
func (d *Display) Close() {
	d.sched.Stop()
	d.closed = true
	d.hooks = nil
}

func (d *Display) tick() {
	if d.src == nil || d.src.Len() == 0 {
		return
	}
	v := d.src.Next()
	d.win.Push(v)
	d.redraw()

	if len(d.hooks) == 0 {
		return
	}
	f := Frame{Sample: v, Values: d.win.Values()}
	for _, fn := range d.hooks {
		fn(f)
	}
}

func (d *Display) redraw() {
	if d.surface == nil || d.loading {
		return
	}
	d.renderer.Draw(d.surface, d.win.Values(), d.advisory)
}

// Values copia la ventana visible, el más viejo primero.
func (d *Display) Values() []float64 { return d.win.Values() }

func (d *Display) Running() bool { return d.sched.Running() }

type Status struct {
	ID        string `json:"id"`
	Running   bool   `json:"running"`
	Loading   bool   `json:"loading"`
	Synthetic bool   `json:"synthetic"`
	Advisory  string `json:"advisory,omitempty"`
	Error     string `json:"error,omitempty"`
	Capacity  int    `json:"capacity"`
	Length    int    `json:"length"`
	SourceLen int    `json:"sourceLength"`
	Ticks     uint64 `json:"ticks"`
	Fetches   int    `json:"fetches"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func (d *Display) Status() Status {
	st := Status{
		ID:        d.id.String(),
		Running:   d.sched.Running(),
		Loading:   d.loading,
		Synthetic: d.synthetic,
		Advisory:  d.advisory,
		Capacity:  d.win.Cap(),
		Length:    d.win.Len(),
		Ticks:     d.sched.Ticks(),
		Fetches:   d.fetches,
		Width:     d.width,
		Height:    d.height,
	}
	if d.src != nil {
		st.SourceLen = d.src.Len()
	}
	if d.lastErr != nil {
		st.Error = d.lastErr.Error()
	}
	return st
}
