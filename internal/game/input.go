package game

import (
	"strings"
	"time"
)

// Controls is a set of logical controls.
type Controls uint8

const (
	ControlLeft Controls = 1 << iota
	ControlRight
	ControlJump
)

// Has reports whether every control in c is held.
func (s Controls) Has(c Controls) bool {
	return s&c == c && c != 0
}

func (s Controls) String() string {
	var parts []string
	if s.Has(ControlLeft) {
		parts = append(parts, "left")
	}
	if s.Has(ControlRight) {
		parts = append(parts, "right")
	}
	if s.Has(ControlJump) {
		parts = append(parts, "jump")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// keyControls maps normalized key names to controls. Browser names
// (arrowleft) and terminal names (left) are both accepted.
var keyControls = map[string]Controls{
	"a":          ControlLeft,
	"left":       ControlLeft,
	"arrowleft":  ControlLeft,
	"d":          ControlRight,
	"right":      ControlRight,
	"arrowright": ControlRight,
	"w":          ControlJump,
	"up":         ControlJump,
	"arrowup":    ControlJump,
	" ":          ControlJump,
	"space":      ControlJump,
}

// reservedKeys never reach the host's default handling (page scroll).
var reservedKeys = map[string]bool{
	"s":         true,
	"down":      true,
	"arrowdown": true,
}

// ContinueKeys advance an open dialogue.
var ContinueKeys = map[string]bool{
	"enter": true,
	"e":     true,
}

// NormalizeKey lowercases a key name.
func NormalizeKey(key string) string {
	if key == " " {
		return key
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// IsReserved reports whether the host should swallow the key.
func IsReserved(key string) bool {
	key = NormalizeKey(key)
	_, bound := keyControls[key]
	return bound || reservedKeys[key]
}

// TouchSide is the half of the play area a touch landed on.
type TouchSide int

const (
	TouchLeft TouchSide = iota
	TouchRight
)

// SideOf returns the touch side for a horizontal fraction of the play area.
func SideOf(fraction float64) TouchSide {
	if fraction < 0.5 {
		return TouchLeft
	}
	return TouchRight
}

// InputTracker merges keyboard and touch input into one held-control set.
// While suppressed (dialogue open) presses are dropped; releases always apply.
type InputTracker struct {
	keys       map[string]Controls
	touch      Controls
	lastTap    time.Time
	doubleTap  time.Duration
	suppressed bool
}

// NewInputTracker returns an empty tracker. Two touches within doubleTap
// add jump to the touched direction.
func NewInputTracker(doubleTap time.Duration) *InputTracker {
	if doubleTap <= 0 {
		doubleTap = DefaultDoubleTap
	}
	return &InputTracker{
		keys:      make(map[string]Controls),
		doubleTap: doubleTap,
	}
}

// KeyDown records a pressed key and reports whether it is reserved.
func (t *InputTracker) KeyDown(key string) bool {
	key = NormalizeKey(key)
	c, bound := keyControls[key]
	if bound && !t.suppressed {
		t.keys[key] = c
	}
	return IsReserved(key)
}

// KeyUp releases a key and reports whether it is reserved.
func (t *InputTracker) KeyUp(key string) bool {
	key = NormalizeKey(key)
	delete(t.keys, key)
	return IsReserved(key)
}

// TouchStart presses the control for side.
func (t *InputTracker) TouchStart(side TouchSide, at time.Time) {
	if t.suppressed {
		return
	}
	c := ControlRight
	if side == TouchLeft {
		c = ControlLeft
	}
	if !t.lastTap.IsZero() && at.Sub(t.lastTap) <= t.doubleTap {
		c |= ControlJump
	}
	t.lastTap = at
	t.touch = c
}

// TouchEnd releases any touch controls.
func (t *InputTracker) TouchEnd() {
	t.touch = 0
}

// Suppress gates input. Turning suppression on drops everything held.
func (t *InputTracker) Suppress(on bool) {
	if on && !t.suppressed {
		t.Clear()
	}
	t.suppressed = on
}

// Clear releases every held key and touch.
func (t *InputTracker) Clear() {
	clear(t.keys)
	t.touch = 0
	t.lastTap = time.Time{}
}

// Controls returns the held set that physics may read.
func (t *InputTracker) Controls() Controls {
	if t.suppressed {
		return 0
	}
	c := t.touch
	for _, k := range t.keys {
		c |= k
	}
	return c
}
