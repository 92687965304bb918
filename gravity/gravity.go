// Package gravity provides the gravity fields sampled by the locomotion controller. A field may
// vary per position, so "up" is always derived from the local gravity vector.
package gravity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Sample is the gravity acting at a single position.
type Sample struct {
	// Gravity is the acceleration vector.
	Gravity mgl32.Vec3
	// Up is the unit vector opposite to Gravity. It is game.WorldUp when Gravity is zero.
	Up mgl32.Vec3
}

// Magnitude returns the length of the gravity vector.
func (s Sample) Magnitude() float32 {
	return s.Gravity.Len()
}

// Field returns the gravity at a world position.
type Field interface {
	Sample(pos mgl32.Vec3) Sample
}

// Source is a single contributor to a Composite field. It returns a raw acceleration without an up
// axis.
type Source interface {
	Acceleration(pos mgl32.Vec3) mgl32.Vec3
}

// SampleOf builds a Sample from a gravity vector.
func SampleOf(g mgl32.Vec3) Sample {
	up := game.SafeNormalize(g).Mul(-1)
	if up.LenSqr() == 0 {
		up = game.WorldUp
	}
	return Sample{Gravity: g, Up: up}
}

// Uniform is a constant gravity field.
type Uniform struct {
	Gravity mgl32.Vec3
}

// Earth returns a uniform field pulling along -Y with standard gravity.
func Earth() Uniform {
	return Uniform{Gravity: mgl32.Vec3{0, -9.81, 0}}
}

// Sample ...
func (u Uniform) Sample(mgl32.Vec3) Sample {
	return SampleOf(u.Gravity)
}

// Acceleration ...
func (u Uniform) Acceleration(mgl32.Vec3) mgl32.Vec3 {
	return u.Gravity
}

// Composite sums the acceleration of all of its sources.
type Composite struct {
	Sources []Source
}

// Sample ...
func (c Composite) Sample(pos mgl32.Vec3) Sample {
	var g mgl32.Vec3
	for _, s := range c.Sources {
		g = g.Add(s.Acceleration(pos))
	}
	return SampleOf(g)
}
