package game

const (
	// SteepMinUpDot is the lowest up-dot a non-ground contact may have and still count as a
	// steep surface. Anything below it is a ceiling or an overhang.
	SteepMinUpDot = float32(-0.01)
	// RestingSpeedSqr is the squared speed below which a grounded body is considered resting and
	// only receives gravity along its contact normal.
	RestingSpeedSqr = float32(0.01)
	// ActionMaxSpeed is the highest speed at which a timed ground action may begin.
	ActionMaxSpeed = float32(0.05)
	// OrientationMinSpeedSqr is the squared speed needed before the body turns toward its velocity.
	OrientationMinSpeedSqr = float32(0.01)
	// NormalizeEpsilon is the vector length under which normalization yields the zero vector.
	NormalizeEpsilon = float32(1e-5)

	// SnapMaxStepsAirborne is the number of airborne steps after which ground snapping stops.
	SnapMaxStepsAirborne = 1
	// SnapJumpWindow is the number of steps after a jump during which snapping is suppressed.
	SnapJumpWindow = 2
	// JumpResetSteps is the number of steps after a jump that must pass before landing resets the
	// jump phase.
	JumpResetSteps = 1
	// ClimbJumpWindow is the number of steps after a jump during which climb contacts are ignored.
	ClimbJumpWindow = 2
)
