package gravity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Sphere pulls toward its center. Between InnerRadius and OuterRadius the strength is Gravity.
// It falls off linearly to zero at InnerFalloffRadius and OuterFalloffRadius.
type Sphere struct {
	Center  mgl32.Vec3
	Gravity float32

	InnerFalloffRadius, InnerRadius float32
	OuterRadius, OuterFalloffRadius float32
}

// Acceleration ...
func (s Sphere) Acceleration(pos mgl32.Vec3) mgl32.Vec3 {
	v := s.Center.Sub(pos)
	distance := v.Len()
	if distance > s.OuterFalloffRadius || distance < s.InnerFalloffRadius || distance == 0 {
		return mgl32.Vec3{}
	}

	g := s.Gravity / distance
	if distance > s.OuterRadius {
		if span := s.OuterFalloffRadius - s.OuterRadius; span > 0 {
			g *= 1 - (distance-s.OuterRadius)/span
		}
	} else if distance < s.InnerRadius {
		if span := s.InnerRadius - s.InnerFalloffRadius; span > 0 {
			g *= 1 - (s.InnerRadius-distance)/span
		}
	}
	return v.Mul(g)
}

// Sample ...
func (s Sphere) Sample(pos mgl32.Vec3) Sample {
	return SampleOf(s.Acceleration(pos))
}

// Plane pulls toward a plane along its normal, up to Range above it. Strength falls off linearly
// with height and is full below the plane.
type Plane struct {
	Point   mgl32.Vec3
	Normal  mgl32.Vec3
	Gravity float32
	Range   float32
}

// Acceleration ...
func (p Plane) Acceleration(pos mgl32.Vec3) mgl32.Vec3 {
	up := game.SafeNormalize(p.Normal)
	distance := up.Dot(pos) - up.Dot(p.Point)
	if distance > p.Range {
		return mgl32.Vec3{}
	}

	g := -p.Gravity
	if distance > 0 && p.Range > 0 {
		g *= 1 - distance/p.Range
	}
	return up.Mul(g)
}

// Sample ...
func (p Plane) Sample(pos mgl32.Vec3) Sample {
	return SampleOf(p.Acceleration(pos))
}
