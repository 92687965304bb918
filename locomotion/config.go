package locomotion

import (
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/surface"
)

// Gait selects the base speed the integrator steers toward.
type Gait uint8

const (
	GaitWalk Gait = iota
	GaitRun
	// GaitAlt is the slow alternate gait (the "sniffing" walk).
	GaitAlt
)

// String ...
func (g Gait) String() string {
	switch g {
	case GaitWalk:
		return "walk"
	case GaitRun:
		return "run"
	case GaitAlt:
		return "alt"
	}
	return "unknown"
}

// Config holds the tunables of a controller. It is copied into the controller at creation and
// never changes afterwards.
type Config struct {
	WalkSpeed    float32 `toml:"walk_speed" yaml:"walk_speed"`
	RunSpeed     float32 `toml:"run_speed" yaml:"run_speed"`
	AltGaitSpeed float32 `toml:"alt_gait_speed" yaml:"alt_gait_speed"`
	// RotationSpeed is how fast, in turns of interpolation per second, the body faces its velocity.
	RotationSpeed float32 `toml:"rotation_speed" yaml:"rotation_speed"`

	MaxAcceleration      float32 `toml:"max_acceleration" yaml:"max_acceleration"`
	MaxAirAcceleration   float32 `toml:"max_air_acceleration" yaml:"max_air_acceleration"`
	MaxClimbAcceleration float32 `toml:"max_climb_acceleration" yaml:"max_climb_acceleration"`

	JumpHeight  float32 `toml:"jump_height" yaml:"jump_height"`
	MaxAirJumps int     `toml:"max_air_jumps" yaml:"max_air_jumps"`
	// JumpRequiresResource makes jump requests depend on the resource gate like run requests do.
	JumpRequiresResource bool `toml:"jump_requires_resource" yaml:"jump_requires_resource"`

	GravityMultiplier float32 `toml:"gravity_multiplier" yaml:"gravity_multiplier"`

	// Angles are in degrees, measured from the up axis.
	MaxGroundAngle float32 `toml:"max_ground_angle" yaml:"max_ground_angle"`
	MaxStairsAngle float32 `toml:"max_stairs_angle" yaml:"max_stairs_angle"`
	MaxClimbAngle  float32 `toml:"max_climb_angle" yaml:"max_climb_angle"`

	MaxSnapSpeed        float32 `toml:"max_snap_speed" yaml:"max_snap_speed"`
	GroundProbeDistance float32 `toml:"ground_probe_distance" yaml:"ground_probe_distance"`
	ClimbProbeDistance  float32 `toml:"climb_probe_distance" yaml:"climb_probe_distance"`

	ProbeMask  surface.Mask `toml:"probe_mask" yaml:"probe_mask"`
	StairsMask surface.Mask `toml:"stairs_mask" yaml:"stairs_mask"`
	ClimbMask  surface.Mask `toml:"climb_mask" yaml:"climb_mask"`

	// Mass of the controlled body. Dynamic bodies lighter than this are not ridden.
	Mass float32 `toml:"mass" yaml:"mass"`
	// ActionDuration is the length of the timed ground action in seconds.
	ActionDuration float32 `toml:"action_duration" yaml:"action_duration"`
}

// DefaultConfig returns the default tuning of a controller.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:            10,
		RunSpeed:             15,
		AltGaitSpeed:         5,
		RotationSpeed:        20,
		MaxAcceleration:      50,
		MaxAirAcceleration:   20,
		MaxClimbAcceleration: 40,
		JumpHeight:           2,
		MaxAirJumps:          0,
		GravityMultiplier:    1,
		MaxGroundAngle:       45,
		MaxStairsAngle:       50,
		MaxClimbAngle:        140,
		MaxSnapSpeed:         100,
		GroundProbeDistance:  2.5,
		ClimbProbeDistance:   2.5,
		ProbeMask:            surface.All,
		StairsMask:           surface.All,
		ClimbMask:            surface.All,
		Mass:                 1,
		ActionDuration:       2,
	}
}

// Validate checks that every value is in a range the controller can work with.
func (c Config) Validate() error {
	switch {
	case c.WalkSpeed < 0 || c.RunSpeed < 0 || c.AltGaitSpeed < 0:
		return oerror.New("speeds must be non-negative (walk=%v run=%v alt=%v)", c.WalkSpeed, c.RunSpeed, c.AltGaitSpeed)
	case c.RotationSpeed < 0:
		return oerror.New("rotation speed must be non-negative, got %v", c.RotationSpeed)
	case c.MaxAcceleration <= 0 || c.MaxAirAcceleration <= 0 || c.MaxClimbAcceleration <= 0:
		return oerror.New("accelerations must be positive (ground=%v air=%v climb=%v)", c.MaxAcceleration, c.MaxAirAcceleration, c.MaxClimbAcceleration)
	case c.JumpHeight < 0:
		return oerror.New("jump height must be non-negative, got %v", c.JumpHeight)
	case c.MaxAirJumps < 0:
		return oerror.New("max air jumps must be non-negative, got %v", c.MaxAirJumps)
	case c.GravityMultiplier <= 0:
		return oerror.New("gravity multiplier must be positive, got %v", c.GravityMultiplier)
	case c.MaxGroundAngle < 0 || c.MaxGroundAngle > 90:
		return oerror.New("max ground angle must be within [0, 90], got %v", c.MaxGroundAngle)
	case c.MaxStairsAngle < 0 || c.MaxStairsAngle > 90:
		return oerror.New("max stairs angle must be within [0, 90], got %v", c.MaxStairsAngle)
	case c.MaxClimbAngle < 90 || c.MaxClimbAngle > 180:
		return oerror.New("max climb angle must be within [90, 180], got %v", c.MaxClimbAngle)
	case c.MaxSnapSpeed < 0:
		return oerror.New("max snap speed must be non-negative, got %v", c.MaxSnapSpeed)
	case c.GroundProbeDistance < 0 || c.ClimbProbeDistance < 0:
		return oerror.New("probe distances must be non-negative (ground=%v climb=%v)", c.GroundProbeDistance, c.ClimbProbeDistance)
	case c.Mass <= 0:
		return oerror.New("mass must be positive, got %v", c.Mass)
	case c.ActionDuration < 0:
		return oerror.New("action duration must be non-negative, got %v", c.ActionDuration)
	}
	return nil
}

// Speed returns the base speed of a gait.
func (c Config) Speed(g Gait) float32 {
	switch g {
	case GaitRun:
		return c.RunSpeed
	case GaitAlt:
		return c.AltGaitSpeed
	default:
		return c.WalkSpeed
	}
}

// thresholds are the minimum up-dot products derived from the configured angles.
type thresholds struct {
	ground, stairs, climb float32
}

func newThresholds(c Config) thresholds {
	return thresholds{
		ground: game.CosDeg(c.MaxGroundAngle),
		stairs: game.CosDeg(c.MaxStairsAngle),
		climb:  game.CosDeg(c.MaxClimbAngle),
	}
}
