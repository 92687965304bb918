package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/surface"
)

// Contact is a single contact point reported by the host's collision system.
type Contact struct {
	// Normal is the unit surface normal pointing away from the surface, toward the body.
	Normal mgl32.Vec3
	Layer  surface.Layer
	// Body is the body the touched surface belongs to, or body.None for static scenery.
	Body body.Handle
}

// Hit is the result of a ray probe.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Layer    surface.Layer
	Body     body.Handle
	Distance float32
}

// Probe answers ray queries against the world. Implementations must be safe to call from the
// goroutine advancing the controller.
type Probe interface {
	// Raycast casts a ray from origin along the unit direction dir, reporting the nearest hit
	// within dist on a layer included in mask.
	Raycast(origin, dir mgl32.Vec3, dist float32, mask surface.Mask) (Hit, bool)
}

// ResourceGate gates running (and optionally jumping) behind a drainable resource.
type ResourceGate interface {
	// HasResource reports whether there is resource left to spend.
	HasResource() bool
	// ConsumeOnJump is called once for every processed jump request.
	ConsumeOnJump(wasGrounded bool)
}

// Unlimited is a ResourceGate that never runs out.
type Unlimited struct{}

// HasResource ...
func (Unlimited) HasResource() bool { return true }

// ConsumeOnJump ...
func (Unlimited) ConsumeOnJump(bool) {}

// IngestContact queues a contact to be classified on the next call to Advance.
func (c *Controller) IngestContact(ct Contact) {
	c.pending = append(c.pending, ct)
}

// evaluateContact classifies a single contact against the current up axis and accumulates it
// into the ground, steep and climb sets.
func (c *Controller) evaluateContact(ct Contact) {
	upDot := c.upAxis.Dot(ct.Normal)
	if upDot >= c.minDot(ct.Layer) {
		c.groundContactCount++
		c.contactNormal = c.contactNormal.Add(ct.Normal)
		c.connectedBody = ct.Body
		return
	}

	if upDot > game.SteepMinUpDot {
		c.steepContactCount++
		c.steepNormal = c.steepNormal.Add(ct.Normal)
		if c.groundContactCount == 0 {
			c.connectedBody = ct.Body
		}
	}
	// TODO: add a climb mover that steers along climbNormal with MaxClimbAcceleration and keeps
	// contact by probing ClimbProbeDistance along -lastClimbNormal. Until then climb contacts
	// are only reported through Climbing.
	if upDot >= c.thresholds.climb && c.cfg.ClimbMask.Has(ct.Layer) {
		c.climbContactCount++
		c.climbNormal = c.climbNormal.Add(ct.Normal)
		c.lastClimbNormal = ct.Normal
	}
}

// minDot returns the minimum up-dot at which a surface on the given layer counts as ground.
func (c *Controller) minDot(l surface.Layer) float32 {
	if c.cfg.StairsMask.Has(l) {
		return c.thresholds.stairs
	}
	return c.thresholds.ground
}
