package game

// Integrate proposes the character's next velocity and position for one tick.
// Horizontal velocity is set directly from the held direction (left wins when
// both are held). A jump is only taken from the ground, and gravity is
// applied every tick including the take-off tick. Grounded is left for
// Resolve to decide.
func Integrate(c Character, ctrl Controls, t Tuning) Character {
	next := c

	switch {
	case ctrl.Has(ControlLeft):
		next.Vel.X = -t.MoveSpeed
		next.Moving = true
		next.Facing = FacingLeft
	case ctrl.Has(ControlRight):
		next.Vel.X = t.MoveSpeed
		next.Moving = true
		next.Facing = FacingRight
	default:
		next.Vel.X = 0
		next.Moving = false
	}

	if ctrl.Has(ControlJump) && c.Grounded {
		next.Vel.Y = -t.JumpForce
	}
	next.Vel.Y += t.Gravity

	next.Pos = c.Pos.Add(next.Vel)
	return next
}
