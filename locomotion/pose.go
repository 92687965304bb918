package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Pose is the set of animation flags derived from the settled state of the controller. More than
// one flag may be set at a time.
type Pose struct {
	Idle    bool
	Walk    bool
	Run     bool
	Jump    bool
	Fall    bool
	IdleAlt bool
	WalkAlt bool
	Swim    bool
	Action  bool
}

// Pose returns the animation flags for the last step.
func (c *Controller) Pose() Pose {
	s := c.settled
	moving := s.move != (mgl32.Vec2{})
	grounded := s.state == StateGrounded
	onFoot := moving && c.stepsSinceLastGrounded < 1
	alt := s.gait == GaitAlt

	return Pose{
		Idle:    !moving && grounded && !alt,
		Walk:    onFoot && !alt && !c.inWater,
		Run:     onFoot && !alt && !c.inWater && s.gait == GaitRun && s.speed >= c.cfg.WalkSpeed,
		Jump:    c.jumpPhase != 0,
		Fall:    c.stepsSinceLastGrounded >= 2,
		IdleAlt: !moving && grounded && alt,
		WalkAlt: onFoot && alt,
		Swim:    c.inWater,
		Action:  s.action,
	}
}
