package game

import "time"

const (
	DefaultMoveSpeed        = 4.0
	DefaultJumpForce        = 12.0
	DefaultGravity          = 0.5
	DefaultHalfWidth        = 24.0 // character collision half-width
	DefaultLandingTolerance = 15.0 // band below a platform top that still counts as landing
	DefaultMinX             = 50.0
	DefaultMaxX             = 1200.0
	DefaultFallLimit        = 400.0
	DefaultPickupRadius     = 35.0
	DefaultCoinValue        = 100
	DefaultCameraLead       = 400.0
	DefaultCameraMaxOffset  = 400.0
	DefaultCameraHysteresis = 5.0
	DefaultWorldWidth       = 1250.0
	DefaultWorldHeight      = 300.0

	DefaultParticles     = 24
	DefaultBallGravity   = 0.3
	DefaultAirResistance = 0.99
	DefaultRestitution   = 0.7
	DefaultBallRadius    = 8.0
	DefaultRestSpeed     = 1.0  // rebounds slower than this settle on the surface
	DefaultRollFriction  = 0.95 // horizontal decay while resting

	DefaultTick         = 16 * time.Millisecond
	DefaultTypeInterval = 30 * time.Millisecond
	DefaultDoubleTap    = 300 * time.Millisecond
	DefaultHoldTimeout  = 700 * time.Millisecond // must exceed the OS key-repeat delay (500-660 ms)
	DefaultMaxSteps     = 5 // fixed steps Advance may run per call
)

// Tuning holds every physical constant of a level.
type Tuning struct {
	MoveSpeed        float64 `yaml:"move_speed" toml:"move_speed" json:"move_speed"`
	JumpForce        float64 `yaml:"jump_force" toml:"jump_force" json:"jump_force"`
	Gravity          float64 `yaml:"gravity" toml:"gravity" json:"gravity"`
	HalfWidth        float64 `yaml:"half_width" toml:"half_width" json:"half_width"`
	LandingTolerance float64 `yaml:"landing_tolerance" toml:"landing_tolerance" json:"landing_tolerance"`
	MinX             float64 `yaml:"min_x" toml:"min_x" json:"min_x"`
	MaxX             float64 `yaml:"max_x" toml:"max_x" json:"max_x"`
	FallLimit        float64 `yaml:"fall_limit" toml:"fall_limit" json:"fall_limit"`
	PickupRadius     float64 `yaml:"pickup_radius" toml:"pickup_radius" json:"pickup_radius"`
	CoinValue        int     `yaml:"coin_value" toml:"coin_value" json:"coin_value"`
	CameraLead       float64 `yaml:"camera_lead" toml:"camera_lead" json:"camera_lead"`
	CameraMaxOffset  float64 `yaml:"camera_max_offset" toml:"camera_max_offset" json:"camera_max_offset"`
	CameraHysteresis float64 `yaml:"camera_hysteresis" toml:"camera_hysteresis" json:"camera_hysteresis"`
	WorldWidth       float64 `yaml:"world_width" toml:"world_width" json:"world_width"`
	WorldHeight      float64 `yaml:"world_height" toml:"world_height" json:"world_height"`

	Particles     int     `yaml:"particles" toml:"particles" json:"particles"`
	BallGravity   float64 `yaml:"ball_gravity" toml:"ball_gravity" json:"ball_gravity"`
	AirResistance float64 `yaml:"air_resistance" toml:"air_resistance" json:"air_resistance"`
	Restitution   float64 `yaml:"restitution" toml:"restitution" json:"restitution"`
	BallRadius    float64 `yaml:"ball_radius" toml:"ball_radius" json:"ball_radius"`
	RestSpeed     float64 `yaml:"rest_speed" toml:"rest_speed" json:"rest_speed"`
	RollFriction  float64 `yaml:"roll_friction" toml:"roll_friction" json:"roll_friction"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:        DefaultMoveSpeed,
		JumpForce:        DefaultJumpForce,
		Gravity:          DefaultGravity,
		HalfWidth:        DefaultHalfWidth,
		LandingTolerance: DefaultLandingTolerance,
		MinX:             DefaultMinX,
		MaxX:             DefaultMaxX,
		FallLimit:        DefaultFallLimit,
		PickupRadius:     DefaultPickupRadius,
		CoinValue:        DefaultCoinValue,
		CameraLead:       DefaultCameraLead,
		CameraMaxOffset:  DefaultCameraMaxOffset,
		CameraHysteresis: DefaultCameraHysteresis,
		WorldWidth:       DefaultWorldWidth,
		WorldHeight:      DefaultWorldHeight,
		Particles:        DefaultParticles,
		BallGravity:      DefaultBallGravity,
		AirResistance:    DefaultAirResistance,
		Restitution:      DefaultRestitution,
		BallRadius:       DefaultBallRadius,
		RestSpeed:        DefaultRestSpeed,
		RollFriction:     DefaultRollFriction,
	}
}
