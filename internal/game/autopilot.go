package game

import "math"

const (
	lookaheadTicks = 120
	arriveSlack    = 2.0
)

// Autopilot plays a session by itself. On the ground it looks ahead with the
// same Integrate and Resolve the session uses, so it only commits to a jump
// or a drop it can survive. In the air it keeps the direction it chose.
type Autopilot struct {
	dir  Controls
	held Controls
}

// Drive issues the key presses for the next tick.
func (a *Autopilot) Drive(s *Session) {
	if s.dialogue.Active() {
		a.release(s, ControlLeft|ControlRight|ControlJump)
		s.Continue()
		return
	}
	if s.Phase() == PhaseCelebrating {
		a.release(s, ControlLeft|ControlRight|ControlJump)
		return
	}

	target, ok := a.target(s)
	if !ok {
		a.release(s, ControlLeft|ControlRight|ControlJump)
		return
	}

	c := s.character
	if !c.Grounded {
		a.press(s, a.dir)
		return
	}

	dx := target.X - c.Pos.X
	a.dir = ControlRight
	if dx < 0 {
		a.dir = ControlLeft
	}
	if math.Abs(dx) <= arriveSlack && target.Dist(c.Pos) >= s.level.Tuning.PickupRadius {
		// Directly below an out-of-reach coin: jump straight up.
		a.press(s, ControlJump)
		return
	}

	jump := a.dir | ControlJump
	switch {
	case hits(s, c, jump, a.dir, target):
		a.press(s, jump)
	case staysGrounded(s, c, a.dir):
		a.press(s, a.dir)
	case survives(s, c, jump, a.dir) && !survives(s, c, a.dir, a.dir):
		a.press(s, jump)
	default:
		a.press(s, a.dir)
	}
}

// target returns the nearest uncollected coin.
func (a *Autopilot) target(s *Session) (Vec, bool) {
	best, found := math.Inf(1), false
	var pos Vec
	for i, coin := range s.level.Coins {
		if s.progression.IsCollected(i) {
			continue
		}
		if d := coin.Dist(s.character.Pos); d < best {
			best, pos, found = d, coin, true
		}
	}
	return pos, found
}

func (a *Autopilot) press(s *Session, want Controls) {
	a.release(s, a.held&^want)
	for _, c := range []Controls{ControlLeft, ControlRight, ControlJump} {
		if want.Has(c) && !a.held.Has(c) {
			s.KeyDown(keyFor(c))
		}
	}
	a.held = want
}

func (a *Autopilot) release(s *Session, which Controls) {
	for _, c := range []Controls{ControlLeft, ControlRight, ControlJump} {
		if which.Has(c) && a.held.Has(c) {
			s.KeyUp(keyFor(c))
		}
	}
	a.held &^= which
}

func keyFor(c Controls) string {
	switch c {
	case ControlLeft:
		return "a"
	case ControlRight:
		return "d"
	default:
		return "w"
	}
}

// trace simulates first for one tick then rest, calling visit with the
// previous and resolved character. It stops when visit returns false or the
// character respawns, reporting whether a respawn happened.
func trace(s *Session, c Character, first, rest Controls, visit func(prev, next Character) bool) bool {
	ctrl := first
	for i := 0; i < lookaheadTicks; i++ {
		next, respawned := s.resolve(Integrate(c, ctrl, s.level.Tuning))
		if respawned {
			return true
		}
		if !visit(c, next) {
			return false
		}
		c = next
		ctrl = rest
	}
	return false
}

func hits(s *Session, c Character, first, rest Controls, target Vec) bool {
	hit := false
	trace(s, c, first, rest, func(prev, next Character) bool {
		r := s.level.Tuning.PickupRadius
		if prev.Pos.Dist(target) < r || next.Pos.Dist(target) < r {
			hit = true
			return false
		}
		return true
	})
	return hit
}

func staysGrounded(s *Session, c Character, dir Controls) bool {
	next, respawned := s.resolve(Integrate(c, dir, s.level.Tuning))
	return !respawned && next.Grounded
}

func survives(s *Session, c Character, first, rest Controls) bool {
	landed := false
	fell := trace(s, c, first, rest, func(prev, next Character) bool {
		if next.Grounded && !prev.Grounded {
			landed = true
			return false
		}
		return true
	})
	return landed && !fell
}

// Simulate plays s with an Autopilot for at most maxTicks physics ticks,
// revealing dialogue text every tick. It stops early once the session is
// celebrating and returns the final snapshot.
func Simulate(s *Session, maxTicks int) Snapshot {
	var pilot Autopilot
	for i := 0; i < maxTicks && s.Phase() != PhaseCelebrating; i++ {
		pilot.Drive(s)
		s.Tick()
		s.TypeTick()
	}
	return s.Snapshot()
}
