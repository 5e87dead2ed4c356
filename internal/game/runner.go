package game

import (
	"context"
	"time"

	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/sirupsen/logrus"
)

// EventKind identifies a Runner input event.
type EventKind int

const (
	EventKey EventKind = iota
	EventTouch
	EventContinue
	EventReset
)

// Event is input delivered to a Runner from another goroutine.
type Event struct {
	Kind EventKind
	Key  string
	Down bool
	X    float64 // touch position as a fraction of the play area width
}

// Observer receives a snapshot after every physics tick.
type Observer func(Snapshot)

// Runner drives a Session from real-time tickers. The session is only ever
// touched by the goroutine running Run.
type Runner struct {
	session      *Session
	events       chan Event
	observers    []Observer
	tick         time.Duration
	typeInterval time.Duration
	now          func() time.Time
	log          *logrus.Entry
}

// NewRunner wraps s. typeInterval is the typewriter reveal period.
func NewRunner(s *Session, typeInterval time.Duration) *Runner {
	if typeInterval <= 0 {
		typeInterval = DefaultTypeInterval
	}
	return &Runner{
		session:      s,
		events:       make(chan Event, 64),
		tick:         s.TickDuration(),
		typeInterval: typeInterval,
		now:          time.Now,
		log:          logger.Log.WithField("component", "runner"),
	}
}

// Observe registers fn. It must be called before Run.
func (r *Runner) Observe(fn Observer) {
	r.observers = append(r.observers, fn)
}

// Send queues an event without blocking. It returns false if the queue is full.
func (r *Runner) Send(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	default:
		r.log.WithField("kind", ev.Kind).Warn("event queue full, dropping input")
		return false
	}
}

// Run ticks the session until ctx is done. The typewriter ticker only runs
// while the dialogue is typing; both tickers are stopped on return.
func (r *Runner) Run(ctx context.Context) error {
	physics := time.NewTicker(r.tick)
	defer physics.Stop()

	typer := time.NewTicker(r.typeInterval)
	typer.Stop()
	defer typer.Stop()
	typing := false

	syncTyper := func() {
		want := r.session.Phase() == PhaseTyping
		switch {
		case want && !typing:
			typer.Reset(r.typeInterval)
		case !want && typing:
			typer.Stop()
		}
		typing = want
	}

	last := r.now()
	r.log.WithField("tick", r.tick).Info("runner started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner stopped")
			return ctx.Err()
		case ev := <-r.events:
			r.apply(ev)
		case <-physics.C:
			now := r.now()
			if r.session.Advance(now.Sub(last)) > 0 {
				snap := r.session.Snapshot()
				for _, fn := range r.observers {
					fn(snap)
				}
			}
			last = now
		case <-typer.C:
			r.session.TypeTick()
		}
		syncTyper()
	}
}

func (r *Runner) apply(ev Event) {
	s := r.session
	switch ev.Kind {
	case EventKey:
		if ev.Down {
			s.KeyDown(ev.Key)
		} else {
			s.KeyUp(ev.Key)
		}
	case EventTouch:
		if ev.Down {
			s.TouchStart(SideOf(ev.X), r.now())
		} else {
			s.TouchEnd()
		}
	case EventContinue:
		s.Continue()
	case EventReset:
		s.Reset()
	}
}
