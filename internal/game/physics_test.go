package game

import "testing"

func TestIntegrate(t *testing.T) {
	tun := DefaultTuning()
	start := Character{Pos: Vec{X: 100, Y: 250}, Grounded: true, Facing: FacingLeft}

	tests := []struct {
		name       string
		c          Character
		ctrl       Controls
		wantVel    Vec
		wantFacing Facing
		wantMoving bool
	}{
		{"idle on ground", start, 0, Vec{0, 0.5}, FacingLeft, false},
		{"right", start, ControlRight, Vec{4, 0.5}, FacingRight, true},
		{"left", start, ControlLeft, Vec{-4, 0.5}, FacingLeft, true},
		{"left wins over right", start, ControlLeft | ControlRight, Vec{-4, 0.5}, FacingLeft, true},
		{"jump from ground", start, ControlJump, Vec{0, -11.5}, FacingLeft, false},
		{"jump right", start, ControlJump | ControlRight, Vec{4, -11.5}, FacingRight, true},
		{
			"jump ignored in the air",
			Character{Pos: Vec{X: 100, Y: 100}, Vel: Vec{Y: -3}},
			ControlJump,
			Vec{0, -2.5},
			FacingRight,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Integrate(tt.c, tt.ctrl, tun)
			if got.Vel != tt.wantVel {
				t.Errorf("vel = %v, want %v", got.Vel, tt.wantVel)
			}
			if want := tt.c.Pos.Add(tt.wantVel); got.Pos != want {
				t.Errorf("pos = %v, want %v", got.Pos, want)
			}
			if got.Facing != tt.wantFacing {
				t.Errorf("facing = %v, want %v", got.Facing, tt.wantFacing)
			}
			if got.Moving != tt.wantMoving {
				t.Errorf("moving = %v, want %v", got.Moving, tt.wantMoving)
			}
			if got.Grounded != tt.c.Grounded {
				t.Errorf("Integrate changed grounded to %v", got.Grounded)
			}
		})
	}
}

func TestAnimationFor(t *testing.T) {
	tests := []struct {
		grounded, moving bool
		want             Animation
	}{
		{true, false, AnimIdle},
		{true, true, AnimRun},
		{false, false, AnimJump},
		{false, true, AnimJump},
	}
	for _, tt := range tests {
		if got := AnimationFor(tt.grounded, tt.moving); got != tt.want {
			t.Errorf("AnimationFor(%v, %v) = %v, want %v", tt.grounded, tt.moving, got, tt.want)
		}
	}
}
