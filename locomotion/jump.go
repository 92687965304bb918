package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// jump applies a jump impulse if the body is able to jump. It returns false if the request was
// a no-op because the air jump budget is spent.
func (c *Controller) jump(running bool) bool {
	c.speedOnJump = c.cfg.WalkSpeed
	if running {
		c.speedOnJump = c.cfg.RunSpeed
	}

	var dir mgl32.Vec3
	switch {
	case c.grounded():
		dir = c.contactNormal
	case c.onSteep():
		dir = c.steepNormal
		c.jumpPhase = 0
	case c.cfg.MaxAirJumps > 0 && c.jumpPhase <= c.cfg.MaxAirJumps:
		if c.jumpPhase == 0 {
			// Walking off a ledge spends the grounded jump.
			c.jumpPhase = 1
		}
		dir = c.contactNormal
	default:
		return false
	}

	c.stepsSinceLastJump = 0
	c.jumpPhase = min(c.jumpPhase+1, c.cfg.MaxAirJumps+1)

	jumpSpeed := math32.Sqrt(2 * c.gravity.Len() * c.cfg.JumpHeight)
	dir = game.SafeNormalize(dir.Add(c.upAxis))
	if aligned := c.velocity.Dot(dir); aligned > 0 {
		jumpSpeed = math32.Max(jumpSpeed-aligned, 0)
	}
	c.velocity = c.velocity.Add(dir.Mul(jumpSpeed))
	return true
}
