package game

import "math"

// Camera is the horizontal view offset in world units.
type Camera struct {
	Offset float64
}

// Follow returns the camera for a character at x: a dead-zone follow
// clamped to [0, CameraMaxOffset] that ignores changes within the
// hysteresis band.
func (c Camera) Follow(x float64, t Tuning) Camera {
	target := clamp(x-t.CameraLead, 0, t.CameraMaxOffset)
	if math.Abs(target-c.Offset) > t.CameraHysteresis {
		c.Offset = target
	}
	return c
}
