package game

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"
)

const (
	platformTag = "platform"
	probeTag    = "probe"
	spaceCell   = 16
)

// PlatformSpace is a broad-phase index over a level's platforms. Queries
// return candidate platform indices in level order; the exact contact rules
// are applied by the callers. It reuses one probe object, so it is not safe
// for concurrent use.
type PlatformSpace struct {
	platforms []Platform
	space     *resolv.Space
	probe     *resolv.Object
	origin    Vec
	found     []int
}

// NewPlatformSpace indexes platforms. The space is sized to cover every
// platform plus a margin of one cell.
func NewPlatformSpace(platforms []Platform) *PlatformSpace {
	minX, minY := 0.0, 0.0
	maxX, maxY := float64(spaceCell), float64(spaceCell)
	for _, p := range platforms {
		minX, minY = math.Min(minX, p.Left()), math.Min(minY, p.Top())
		maxX, maxY = math.Max(maxX, p.Right()), math.Max(maxY, p.Top()+p.Height)
	}
	ps := &PlatformSpace{
		platforms: platforms,
		origin:    Vec{X: minX - spaceCell, Y: minY - spaceCell},
	}
	w := int(math.Ceil(maxX-ps.origin.X)) + 2*spaceCell
	h := int(math.Ceil(maxY-ps.origin.Y)) + 2*spaceCell
	ps.space = resolv.NewSpace(w, h, spaceCell, spaceCell)

	// Objects narrower than a cell can fall between cell boundaries.
	for i, p := range platforms {
		w, h := math.Max(p.Width, spaceCell), math.Max(p.Height, spaceCell)
		obj := resolv.NewObject(p.Left()-ps.origin.X, p.Top()-ps.origin.Y, w, h, platformTag)
		obj.Data = i
		ps.space.Add(obj)
	}
	ps.probe = resolv.NewObject(0, 0, 1, 1, probeTag)
	ps.space.Add(ps.probe)
	return ps
}

// Platforms returns the indexed platforms.
func (ps *PlatformSpace) Platforms() []Platform {
	if ps == nil {
		return nil
	}
	return ps.platforms
}

// Near returns the indices of platforms whose cells touch the rectangle
// [left, right] x [top, bottom], padded by one cell, in ascending order. The
// slice is reused by the next call.
func (ps *PlatformSpace) Near(left, top, right, bottom float64) []int {
	if ps == nil {
		return nil
	}
	ps.probe.X = left - ps.origin.X - spaceCell
	ps.probe.Y = top - ps.origin.Y - spaceCell
	ps.probe.W = right - left + 2*spaceCell
	ps.probe.H = bottom - top + 2*spaceCell
	ps.probe.Update()

	ps.found = ps.found[:0]
	if col := ps.probe.Check(0, 0, platformTag); col != nil {
		for _, obj := range col.Objects {
			if i, ok := obj.Data.(int); ok {
				ps.found = append(ps.found, i)
			}
		}
	}
	slices.Sort(ps.found)
	return ps.found
}

// Contact describes ground contact found by GroundContact.
type Contact struct {
	OnGround bool
	Y        float64
	Platform int
}

// GroundContact tests a feet-anchored box of half-width t.HalfWidth centred
// on x against the platforms. A platform counts when it overlaps
// horizontally, the body is not rising, and the feet sit in
// [top, top+LandingTolerance]. The first matching platform in level order wins.
func GroundContact(x, y, vy float64, ps *PlatformSpace, t Tuning) Contact {
	if vy < 0 {
		return Contact{Y: y, Platform: -1}
	}
	left, right := x-t.HalfWidth, x+t.HalfWidth
	platforms := ps.Platforms()
	for _, i := range ps.Near(left, y-t.LandingTolerance, right, y) {
		p := platforms[i]
		if left >= p.Right() || right <= p.Left() {
			continue
		}
		if y >= p.Top() && y <= p.Top()+t.LandingTolerance {
			return Contact{OnGround: true, Y: p.Top(), Platform: i}
		}
	}
	return Contact{Y: y, Platform: -1}
}

// Resolve corrects a proposed character against the platforms: it snaps a
// landing to the platform top, clamps x to the world bounds and respawns a
// character that fell past t.FallLimit. The second result reports a respawn.
func Resolve(proposed Character, ps *PlatformSpace, spawn Vec, t Tuning) (Character, bool) {
	c := proposed

	contact := GroundContact(c.Pos.X, c.Pos.Y, c.Vel.Y, ps, t)
	if contact.OnGround {
		c.Pos.Y = contact.Y
		c.Vel.Y = 0
	}
	c.Grounded = contact.OnGround
	c.Pos.X = clamp(c.Pos.X, t.MinX, t.MaxX)

	if c.Pos.Y > t.FallLimit {
		return SpawnCharacter(spawn), true
	}
	return c, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
