package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// State is the grounding state of the body as settled at the end of a step.
type State uint8

const (
	// StateAirborne means the body touched nothing it could stand on or slide along.
	StateAirborne State = iota
	// StateGrounded means the body has at least one ground contact.
	StateGrounded
	// StateSteepOnly means the body touches only surfaces too steep to stand on.
	StateSteepOnly
)

// String ...
func (s State) String() string {
	switch s {
	case StateAirborne:
		return "airborne"
	case StateGrounded:
		return "grounded"
	case StateSteepOnly:
		return "steep"
	}
	return "unknown"
}

func (c *Controller) grounded() bool { return c.groundContactCount > 0 }
func (c *Controller) onSteep() bool  { return c.steepContactCount > 0 }

func (c *Controller) climbing() bool {
	return c.climbContactCount > 0 && c.stepsSinceLastJump > game.ClimbJumpWindow
}

func (c *Controller) state() State {
	switch {
	case c.grounded():
		return StateGrounded
	case c.onSteep():
		return StateSteepOnly
	}
	return StateAirborne
}

// updateState refreshes the grounding state for the step, after every contact has been
// classified.
func (c *Controller) updateState(pos, vel mgl32.Vec3, dt float32) {
	c.stepsSinceLastGrounded++
	c.stepsSinceLastJump++
	c.velocity = vel

	if c.grounded() || c.snapToGround(pos) || c.checkSteepContacts() {
		c.stepsSinceLastGrounded = 0
		if c.stepsSinceLastJump > game.JumpResetSteps {
			c.jumpPhase = 0
		}
		if c.groundContactCount > 1 {
			c.contactNormal = game.SafeNormalize(c.contactNormal)
		}
	} else {
		c.contactNormal = c.upAxis
	}

	if c.connectedBody.Valid() && c.bodies != nil {
		st, ok := c.bodies.Body(c.connectedBody)
		if ok && (st.Kinematic || st.Mass >= c.cfg.Mass) {
			c.updateConnectionState(pos, st, dt)
		}
	}
}

// checkSteepContacts promotes several steep contacts forming a crevasse into a single ground
// contact when their combined normal is shallow enough to stand on.
func (c *Controller) checkSteepContacts() bool {
	if c.steepContactCount <= 1 {
		return false
	}
	c.steepNormal = game.SafeNormalize(c.steepNormal)
	if c.upAxis.Dot(c.steepNormal) < c.thresholds.ground {
		return false
	}
	c.steepContactCount = 0
	c.groundContactCount = 1
	c.contactNormal = c.steepNormal
	return true
}

// clearState resets the per-step accumulators. The connection anchor and the connected body of
// this step are carried over as the previous ones.
func (c *Controller) clearState() {
	c.groundContactCount, c.steepContactCount, c.climbContactCount = 0, 0, 0
	c.contactNormal, c.steepNormal, c.climbNormal = mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	c.connectionVelocity = mgl32.Vec3{}
	c.previousConnectedBody = c.connectedBody
	c.connectedBody = 0
}
