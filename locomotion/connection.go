package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
)

// updateConnectionState derives the velocity of the connected body at the point the controlled
// body stands on. The anchor is stored in the body's local frame, so rotation of the body is
// accounted for as well as translation.
func (c *Controller) updateConnectionState(pos mgl32.Vec3, st body.State, dt float32) {
	if c.connectedBody == c.previousConnectedBody {
		movement := st.TransformPoint(c.connectionLocalPosition).Sub(c.connectionWorldPosition)
		c.connectionVelocity = movement.Mul(1 / dt)
	}
	c.connectionWorldPosition = pos
	c.connectionLocalPosition = st.InverseTransformPoint(pos)
}
