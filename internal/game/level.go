package game

import (
	"errors"
	"fmt"
)

var (
	ErrNoPlatforms       = errors.New("level has no platforms")
	ErrNoCoins           = errors.New("level has no coins")
	ErrBeatCountMismatch = errors.New("dialogue beat count does not match coin count")
	ErrBadTuning         = errors.New("invalid tuning")
)

// BeatRole is the narrative position of a dialogue beat.
type BeatRole int

const (
	RoleFirst BeatRole = iota
	RoleMiddle
	RoleLast
)

func (r BeatRole) String() string {
	switch r {
	case RoleFirst:
		return "first"
	case RoleLast:
		return "last"
	default:
		return "middle"
	}
}

// Beat is one narrative dialogue entry, shown after a coin pickup.
type Beat struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	Body  string `yaml:"body" toml:"body" json:"body"`
}

// Level is the static world a session plays in.
type Level struct {
	Name      string     `yaml:"name" toml:"name" json:"name"`
	Spawn     Vec        `yaml:"spawn" toml:"spawn" json:"spawn"`
	Platforms []Platform `yaml:"platforms" toml:"platforms" json:"platforms"`
	Coins     []Vec      `yaml:"coins" toml:"coins" json:"coins"`
	Beats     []Beat     `yaml:"beats" toml:"beats" json:"beats"`
	Tuning    Tuning     `yaml:"tuning" toml:"tuning" json:"tuning"`
}

// RoleOf returns the role of the beat at index i. A single-beat level only
// has a closing beat.
func (l Level) RoleOf(i int) BeatRole {
	switch {
	case i == len(l.Beats)-1:
		return RoleLast
	case i == 0:
		return RoleFirst
	default:
		return RoleMiddle
	}
}

// Validate checks the level can be played: geometry exists, there is exactly
// one beat per coin and the tuning is physically sensible.
func (l Level) Validate() error {
	if len(l.Platforms) == 0 {
		return ErrNoPlatforms
	}
	if len(l.Coins) == 0 {
		return ErrNoCoins
	}
	if len(l.Beats) != len(l.Coins) {
		return fmt.Errorf("%w: %d beats for %d coins", ErrBeatCountMismatch, len(l.Beats), len(l.Coins))
	}
	for i, p := range l.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("platform %d: non-positive size %gx%g", i, p.Width, p.Height)
		}
	}
	return l.Tuning.validate()
}

func (t Tuning) validate() error {
	switch {
	case t.MoveSpeed <= 0:
		return fmt.Errorf("%w: move_speed must be positive", ErrBadTuning)
	case t.JumpForce <= 0:
		return fmt.Errorf("%w: jump_force must be positive", ErrBadTuning)
	case t.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrBadTuning)
	case t.HalfWidth <= 0:
		return fmt.Errorf("%w: half_width must be positive", ErrBadTuning)
	case t.LandingTolerance < 0:
		return fmt.Errorf("%w: landing_tolerance is negative", ErrBadTuning)
	case t.MinX >= t.MaxX:
		return fmt.Errorf("%w: min_x %g is not below max_x %g", ErrBadTuning, t.MinX, t.MaxX)
	case t.PickupRadius <= 0:
		return fmt.Errorf("%w: pickup_radius must be positive", ErrBadTuning)
	case t.Particles < 0:
		return fmt.Errorf("%w: particles is negative", ErrBadTuning)
	case t.WorldWidth <= 0 || t.WorldHeight <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrBadTuning)
	}
	return nil
}

const groundY = 250.0

// DefaultLevel returns the stock rooftop level.
func DefaultLevel() Level {
	return Level{
		Name:  "rooftops",
		Spawn: Vec{X: 100, Y: groundY},
		Platforms: []Platform{
			{X: 0, Y: groundY, Width: 200, Height: 50},
			{X: 300, Y: 200, Width: 150, Height: 20},
			{X: 500, Y: 150, Width: 100, Height: 20},
			{X: 700, Y: groundY, Width: 200, Height: 50},
			{X: 950, Y: 180, Width: 120, Height: 20},
		},
		Coins: []Vec{
			{X: 150, Y: groundY - 30},
			{X: 375, Y: 170},
			{X: 550, Y: 120},
			{X: 800, Y: groundY - 30},
			{X: 1010, Y: 150},
			{X: 250, Y: groundY - 60},
		},
		Beats: []Beat{
			{
				Title: "Welcome!",
				Body:  "Hey, I'm Max. Full-stack developer out of Charleston. Grab the coins and I'll tell you a bit about myself.",
			},
			{
				Title: "Where it started",
				Body:  "I cut my teeth at Charleston Hacks, shipping weekend prototypes and learning to love tight feedback loops.",
			},
			{
				Title: "Aviation",
				Body:  "At PlaneLogix I built tooling for aircraft maintenance teams, where correctness is not optional.",
			},
			{
				Title: "Healthcare",
				Body:  "At Rhinogram I worked on patient messaging: real-time systems that people actually rely on.",
			},
			{
				Title: "Scale",
				Body:  "Microsoft taught me what happens when a small bug meets a very large number of users.",
			},
			{
				Title: "You found them all!",
				Body:  "That's every coin. Thanks for playing. Now, how about a little celebration?",
			},
		},
		Tuning: DefaultTuning(),
	}
}
