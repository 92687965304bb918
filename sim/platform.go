package sim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
)

// Platform is a kinematic body that oscillates around Origin. Its position at time t is
// Origin + Extent * sin(2πt / Period).
type Platform struct {
	Body   body.Handle
	Origin mgl32.Vec3
	Extent mgl32.Vec3
	// Period is the duration of a full oscillation in seconds. Zero keeps the platform still.
	Period float32
	// Spin, in radians per second, rotates the platform around the world Y axis.
	Spin float32
}

// PositionAt ...
func (p *Platform) PositionAt(t float32) mgl32.Vec3 {
	if p.Period <= 0 {
		return p.Origin
	}
	return p.Origin.Add(p.Extent.Mul(math32.Sin(2 * math32.Pi * t / p.Period)))
}

// RotationAt ...
func (p *Platform) RotationAt(t float32) mgl32.Quat {
	return mgl32.QuatRotate(p.Spin*t, mgl32.Vec3{0, 1, 0})
}
