// Package anim maneja el loop de animación: cada tick agenda a su sucesor en
// el host, con a lo sumo un callback pendiente a la vez.
package anim

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Handle identifica una ejecución del loop.
type Handle struct {
	s   *Scheduler
	gen uint64
}

// Stop detiene el loop sólo si este handle sigue siendo el actual.
func (h Handle) Stop() {
	if h.s != nil && h.s.gen == h.gen && h.s.state == Running {
		h.s.Stop()
	}
}

// Active indica si el loop de este handle sigue corriendo.
func (h Handle) Active() bool {
	return h.s != nil && h.s.gen == h.gen && h.s.state == Running
}

// Scheduler no es seguro para uso concurrente: llamarlo desde el goroutine del host.
type Scheduler struct {
	host    Host
	tick    func()
	state   State
	gen     uint64
	pending FrameID
	ticks   uint64
}

func NewScheduler(host Host, tick func()) *Scheduler {
	return &Scheduler{host: host, tick: tick}
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Running() bool { return s.state == Running }

// Ticks cuenta los ticks ejecutados desde la creación.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Start (re)arranca el loop. Si ya corría, cancela el frame pendiente antes de
// agendar uno nuevo, así nunca hay dos loops. El primer tick corre en el
// próximo frame del host.
func (s *Scheduler) Start() Handle {
	s.cancelPending()
	s.gen++
	s.state = Running
	s.schedule(s.gen)
	return Handle{s: s, gen: s.gen}
}

// Stop es idempotente; después de Stop no corre ningún tick.
func (s *Scheduler) Stop() {
	if s.state == Stopped {
		return
	}
	s.cancelPending()
	s.gen++
	s.state = Stopped
}

func (s *Scheduler) cancelPending() {
	if s.pending != 0 {
		s.host.CancelFrame(s.pending)
		s.pending = 0
	}
}

func (s *Scheduler) schedule(gen uint64) {
	s.pending = s.host.RequestFrame(func() { s.frame(gen) })
}

func (s *Scheduler) frame(gen uint64) {
	if gen != s.gen || s.state != Running {
		return
	}
	s.pending = 0
	s.ticks++
	s.tick()

	// el tick pudo haber llamado Stop/Start
	if gen == s.gen && s.state == Running {
		s.schedule(gen)
	}
}
