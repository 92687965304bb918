package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// UpdateOrientation turns the body to face its velocity and aligns its up direction with the up
// axis of the gravity field at position. It is meant to be called once per rendered frame or
// per step, after Advance, and returns the new orientation. The orientation is left unchanged
// while the body only touches steep surfaces.
func (c *Controller) UpdateOrientation(dt float32, position mgl32.Vec3, move mgl32.Vec2) mgl32.Quat {
	if c.settled.state == StateSteepOnly {
		return c.orientation
	}
	up := c.field.Sample(position).Up

	if move != (mgl32.Vec2{}) && c.velocity.LenSqr() > game.OrientationMinSpeedSqr {
		target := game.LookRotation(c.velocity, up)
		c.orientation = mgl32.QuatSlerp(c.orientation, target, mgl32.Clamp(c.cfg.RotationSpeed*dt, 0, 1))
	}
	c.orientation = game.LookRotation(c.orientation.Rotate(game.WorldForward), up)
	return c.orientation
}

// Orientation returns the orientation computed by the last call to UpdateOrientation.
func (c *Controller) Orientation() mgl32.Quat {
	return c.orientation
}

// SetOrientation overrides the body's orientation, for example when teleporting it.
func (c *Controller) SetOrientation(q mgl32.Quat) {
	c.orientation = q.Normalize()
}
