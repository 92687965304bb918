package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// snapToGround keeps the body on the ground after it lost contact for a single step, for example
// when running over the crest of a slope. It returns true if the body was snapped.
func (c *Controller) snapToGround(pos mgl32.Vec3) bool {
	if c.stepsSinceLastGrounded > game.SnapMaxStepsAirborne || c.stepsSinceLastJump <= game.SnapJumpWindow {
		return false
	}
	speed := c.velocity.Len()
	if speed > c.cfg.MaxSnapSpeed || c.probe == nil {
		return false
	}

	hit, ok := c.probe.Raycast(pos, c.upAxis.Mul(-1), c.cfg.GroundProbeDistance, c.cfg.ProbeMask)
	if !ok {
		return false
	}
	if c.upAxis.Dot(hit.Normal) < c.minDot(hit.Layer) {
		c.dbg.Notify(true, "snap: hit on %v too steep (normal=%v)", hit.Layer, hit.Normal)
		return false
	}

	c.groundContactCount = 1
	c.contactNormal = hit.Normal
	if dot := c.velocity.Dot(hit.Normal); dot > 0 {
		c.velocity = game.SafeNormalize(c.velocity.Sub(hit.Normal.Mul(dot))).Mul(speed)
	}
	c.connectedBody = hit.Body
	c.dbg.Notify(true, "snap: snapped to %v at distance %v", hit.Layer, hit.Distance)
	return true
}

// PreventSnapToGround disables ground snapping for the next steps, as if the body had just jumped.
// Hosts call it when launching the body by other means, such as a jump pad.
func (c *Controller) PreventSnapToGround() {
	c.stepsSinceLastJump = -1
}
