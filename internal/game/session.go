package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/sirupsen/logrus"
)

// Options configures a Session.
type Options struct {
	Tick      time.Duration // fixed physics step
	DoubleTap time.Duration // touch double-tap window
	MaxSteps  int           // cap on fixed steps per Advance call
	Seed      uint64        // celebration randomness; 0 picks one from the clock
}

func (o Options) withDefaults() Options {
	if o.Tick <= 0 {
		o.Tick = DefaultTick
	}
	if o.DoubleTap <= 0 {
		o.DoubleTap = DefaultDoubleTap
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	return o
}

// TickResult reports what one physics tick did.
type TickResult struct {
	Collected []int
	Respawned bool
	Opened    bool
}

// Session owns all mutable game state. It is not safe for concurrent use;
// one host loop drives it.
type Session struct {
	level Level
	opts  Options

	platforms   *PlatformSpace
	character   Character
	input       *InputTracker
	progression *Progression
	dialogue    Dialogue
	particles   []Particle
	camera      Camera

	rng   *rand.Rand
	ticks uint64
	accum time.Duration

	log *logrus.Entry
}

// NewSession validates lvl and returns a session at the spawn point.
func NewSession(lvl Level, opts Options) (*Session, error) {
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", lvl.Name, err)
	}
	opts = opts.withDefaults()

	s := &Session{
		level:       lvl,
		opts:        opts,
		platforms:   NewPlatformSpace(lvl.Platforms),
		character:   SpawnCharacter(lvl.Spawn),
		input:       NewInputTracker(opts.DoubleTap),
		progression: NewProgression(lvl.Coins, lvl.Tuning.PickupRadius, lvl.Tuning.CoinValue),
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1)),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"level":     lvl.Name,
		}),
	}
	s.camera = s.camera.Follow(s.character.Pos.X, lvl.Tuning)
	return s, nil
}

// Tick runs one fixed step: input, physics, collision, progression and
// dialogue triggers, then camera and celebration particles.
func (s *Session) Tick() TickResult {
	var res TickResult
	t := s.level.Tuning
	s.ticks++

	prev := s.character
	proposed := Integrate(prev, s.input.Controls(), t)
	resolved, respawned := s.resolve(proposed)
	s.character = resolved

	if respawned {
		res.Respawned = true
		s.log.WithField("tick", s.ticks).Debug("character fell through, respawning")
	} else {
		for _, trig := range s.progression.Check(prev.Pos, resolved.Pos) {
			res.Collected = append(res.Collected, trig.Coin)
			s.dialogue.Open(trig.Beat, s.level.Beats[trig.Beat], trig.Closing)
			res.Opened = true
			s.log.WithFields(logrus.Fields{
				"coin":  trig.Coin,
				"beat":  trig.Beat,
				"score": s.progression.Score(),
			}).Info("coin collected")
		}
		if res.Opened {
			s.input.Suppress(true)
		}
	}

	s.camera = s.camera.Follow(s.character.Pos.X, t)
	if len(s.particles) > 0 {
		s.particles = StepParticles(s.particles, s.platforms, t)
	}
	return res
}

func (s *Session) resolve(proposed Character) (Character, bool) {
	return Resolve(proposed, s.platforms, s.level.Spawn, s.level.Tuning)
}

// Advance accumulates elapsed real time and runs as many fixed ticks as fit,
// at most MaxSteps. Backlog beyond the cap is dropped. It returns the number
// of ticks run.
func (s *Session) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	s.accum += elapsed
	steps := 0
	for s.accum >= s.opts.Tick && steps < s.opts.MaxSteps {
		s.Tick()
		s.accum -= s.opts.Tick
		steps++
	}
	if steps == s.opts.MaxSteps && s.accum >= s.opts.Tick {
		s.log.WithField("dropped", s.accum).Debug("frame backlog dropped")
		s.accum = 0
	}
	return steps
}

// TypeTick reveals one more character of the open dialogue. It returns
// false when no dialogue is typing.
func (s *Session) TypeTick() bool {
	return s.dialogue.Type()
}

// Continue sends the continue input to the dialogue.
func (s *Session) Continue() ContinueResult {
	res := s.dialogue.Continue(s.progression.Complete())
	if res == ContinueCelebrate {
		s.particles = SpawnParticles(s.level.Tuning.Particles, s.rng, s.level.Tuning)
		s.log.WithFields(logrus.Fields{
			"particles": len(s.particles),
			"score":     s.progression.Score(),
			"ticks":     s.ticks,
		}).Info("all coins collected, celebrating")
	}
	if !s.dialogue.Active() {
		s.input.Suppress(false)
	}
	return res
}

// KeyDown routes a key press. Continue keys advance an open dialogue,
// everything else goes to the input tracker. It reports whether the host
// should suppress its default handling of the key.
func (s *Session) KeyDown(key string) bool {
	key = NormalizeKey(key)
	if ContinueKeys[key] && s.dialogue.Active() {
		s.Continue()
		return true
	}
	return s.input.KeyDown(key)
}

// KeyUp routes a key release.
func (s *Session) KeyUp(key string) bool {
	return s.input.KeyUp(key)
}

// TouchStart routes a touch. A touch while a dialogue is open continues it.
func (s *Session) TouchStart(side TouchSide, at time.Time) {
	if s.dialogue.Active() {
		s.Continue()
		return
	}
	s.input.TouchStart(side, at)
}

// TouchEnd routes a touch release.
func (s *Session) TouchEnd() {
	s.input.TouchEnd()
}

// Reset restores character, score, coins, dialogue, input and celebration
// to their initial values.
func (s *Session) Reset() {
	s.character = SpawnCharacter(s.level.Spawn)
	s.input.Suppress(false)
	s.input.Clear()
	s.progression.Reset()
	s.dialogue.Reset()
	s.particles = nil
	s.camera = Camera{}.Follow(s.character.Pos.X, s.level.Tuning)
	s.ticks = 0
	s.accum = 0
	s.log.Info("session reset")
}

// Level returns the level being played.
func (s *Session) Level() Level { return s.level }

// Phase returns the dialogue phase.
func (s *Session) Phase() Phase { return s.dialogue.Phase() }

// Ticks returns the physics ticks run since start or the last reset.
func (s *Session) Ticks() uint64 { return s.ticks }

// TickDuration returns the fixed step length.
func (s *Session) TickDuration() time.Duration { return s.opts.Tick }

// Character returns the current character state.
func (s *Session) Character() Character { return s.character }

// Controls returns the held controls physics will read on the next tick.
func (s *Session) Controls() Controls { return s.input.Controls() }
