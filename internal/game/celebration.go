package game

import (
	"math"
	"math/rand/v2"
)

// Particle is one celebration tennis ball.
type Particle struct {
	Pos      Vec     `json:"pos"`
	Vel      Vec     `json:"vel"`
	Rotation float64 `json:"rotation"`
	Spin     float64 `json:"spin"`
	Resting  bool    `json:"resting"`
}

// SpawnParticles drops n balls above the visible world (y < 0) spread across
// its width, with random velocity and spin.
func SpawnParticles(n int, rng *rand.Rand, t Tuning) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			Pos: Vec{
				X: rng.Float64() * t.WorldWidth,
				Y: -20 - rng.Float64()*280,
			},
			Vel: Vec{
				X: rng.Float64()*4 - 2,
				Y: rng.Float64() * 2,
			},
			Rotation: rng.Float64() * 2 * math.Pi,
			Spin:     rng.Float64()*0.4 - 0.2,
		}
	}
	return ps
}

// StepParticles advances every ball one tick and drops those that left the
// bottom of the world. The slice is compacted in place.
func StepParticles(ps []Particle, space *PlatformSpace, t Tuning) []Particle {
	alive := 0
	for i := range ps {
		p := stepParticle(ps[i], space, t)
		if p.Pos.Y-t.BallRadius > t.WorldHeight {
			continue
		}
		ps[alive] = p
		alive++
	}
	return ps[:alive]
}

func stepParticle(p Particle, space *PlatformSpace, t Tuning) Particle {
	r := t.BallRadius
	prevBottom := p.Pos.Y + r

	p.Vel.Y += t.BallGravity
	p.Vel.X *= t.AirResistance
	p.Vel.Y *= t.AirResistance
	p.Pos = p.Pos.Add(p.Vel)
	p.Rotation += p.Spin
	p.Resting = false

	bottom := p.Pos.Y + r
	var near []int
	if p.Vel.Y > 0 {
		near = space.Near(p.Pos.X-r, prevBottom, p.Pos.X+r, bottom)
	}
	platforms := space.Platforms()
	for _, i := range near {
		pl := platforms[i]
		if p.Pos.X+r <= pl.Left() || p.Pos.X-r >= pl.Right() {
			continue
		}
		if prevBottom <= pl.Top() && bottom >= pl.Top() {
			p.Pos.Y = pl.Top() - r
			p.Vel.Y = -p.Vel.Y * t.Restitution
			if -p.Vel.Y < t.RestSpeed {
				p.Vel.Y = 0
				p.Vel.X *= t.RollFriction
				p.Resting = true
			}
			p.Spin = p.Vel.X / r
			break
		}
	}

	if p.Pos.X-r < 0 {
		p.Pos.X = r
		p.Vel.X = -p.Vel.X * t.Restitution
		p.Spin = -p.Spin
	} else if p.Pos.X+r > t.WorldWidth {
		p.Pos.X = t.WorldWidth - r
		p.Vel.X = -p.Vel.X * t.Restitution
		p.Spin = -p.Spin
	}
	return p
}
