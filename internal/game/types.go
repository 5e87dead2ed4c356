// Package game provides the platformer session: input tracking, physics,
// platform collision, coin progression, narrative dialogue and the
// celebration effect, all advanced by one fixed tick.
package game

import "math"

// Vec is a point or vector in world units. Y grows downwards.
type Vec struct {
	X float64 `yaml:"x" toml:"x" json:"x"`
	Y float64 `yaml:"y" toml:"y" json:"y"`
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Platform is a static axis-aligned rectangle. Y is the top edge.
type Platform struct {
	X      float64 `yaml:"x" toml:"x" json:"x"`
	Y      float64 `yaml:"y" toml:"y" json:"y"`
	Width  float64 `yaml:"width" toml:"width" json:"width"`
	Height float64 `yaml:"height" toml:"height" json:"height"`
}

// Left returns the platform's left edge.
func (p Platform) Left() float64 { return p.X }

// Right returns the platform's right edge.
func (p Platform) Right() float64 { return p.X + p.Width }

// Top returns the platform's walkable surface.
func (p Platform) Top() float64 { return p.Y }

// Facing is the direction the character looks.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Character is the player-controlled entity. Pos is anchored at the feet.
type Character struct {
	Pos      Vec    `json:"pos"`
	Vel      Vec    `json:"vel"`
	Facing   Facing `json:"facing"`
	Grounded bool   `json:"grounded"`
	Moving   bool   `json:"moving"`
}

// SpawnCharacter returns a character standing at spawn with zero velocity.
func SpawnCharacter(spawn Vec) Character {
	return Character{
		Pos:      spawn,
		Facing:   FacingRight,
		Grounded: true,
	}
}

// Animation is the character's visual state.
type Animation int

const (
	AnimIdle Animation = iota
	AnimRun
	AnimJump
)

// String returns the asset sequence name for the animation.
func (a Animation) String() string {
	switch a {
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	default:
		return "idle"
	}
}

// animationTable is indexed by [grounded][moving].
var animationTable = [2][2]Animation{
	{AnimJump, AnimJump},
	{AnimIdle, AnimRun},
}

// AnimationFor maps ground contact and horizontal movement to an animation.
func AnimationFor(grounded, moving bool) Animation {
	return animationTable[b2i(grounded)][b2i(moving)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
