package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// adjustVelocity steers the planar velocity, relative to the connected body, toward the desired
// velocity of the intent.
func (c *Controller) adjustVelocity(move mgl32.Vec2, gait Gait, right, forward mgl32.Vec3, dt float32) {
	if c.onSteep() && !c.grounded() {
		// Sliding down a wall: gravity is not scaled by the multiplier here.
		c.velocity = c.gravity.Mul(0.5)
		return
	}

	acceleration := c.cfg.MaxAirAcceleration
	if c.grounded() {
		acceleration = c.cfg.MaxAcceleration
	}
	speed := c.cfg.Speed(gait)
	if c.jumpPhase > 0 {
		speed = c.speedOnJump
	}

	xAxis := game.ProjectDirectionOnPlane(right, c.contactNormal)
	zAxis := game.ProjectDirectionOnPlane(forward, c.contactNormal)

	relative := c.velocity.Sub(c.connectionVelocity)
	currentX, currentZ := relative.Dot(xAxis), relative.Dot(zAxis)

	maxSpeedChange := acceleration * dt
	newX := game.MoveTowards(currentX, move.X()*speed, maxSpeedChange)
	newZ := game.MoveTowards(currentZ, move.Y()*speed, maxSpeedChange)

	c.velocity = c.velocity.Add(xAxis.Mul(newX - currentX)).Add(zAxis.Mul(newZ - currentZ))
}

// applyGravity integrates gravity for a step in which no jump was requested. A resting grounded
// body only receives gravity along its contact normal so that it does not creep down slopes.
func (c *Controller) applyGravity(dt float32) {
	if c.grounded() && c.velocity.LenSqr() < game.RestingSpeedSqr {
		c.velocity = c.velocity.Add(c.contactNormal.Mul(c.gravity.Dot(c.contactNormal) * dt))
		return
	}
	c.velocity = c.velocity.Add(c.gravity.Mul(dt * c.cfg.GravityMultiplier))
}
