// Package body tracks the dynamic and kinematic bodies a controlled body can stand on. The
// controller only holds Handles into a Registry and never owns a body's lifetime.
package body

import "github.com/go-gl/mathgl/mgl32"

// Handle refers to a body in a Registry. The zero Handle refers to no body.
type Handle uint32

// None is the Handle of "no body", used for static scenery.
const None Handle = 0

// Valid reports whether the handle refers to a body.
func (h Handle) Valid() bool {
	return h != None
}

// State is a snapshot of a body's transform and mass properties.
type State struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Mass     float32
	// Kinematic bodies are moved by script and are never pushed by the controlled body.
	Kinematic bool
}

// TransformPoint converts a point from the body's local frame to world space.
func (s State) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return s.Position.Add(s.rotation().Rotate(local))
}

// InverseTransformPoint converts a world space point to the body's local frame.
func (s State) InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3 {
	return s.rotation().Inverse().Rotate(world.Sub(s.Position))
}

// rotation returns the body rotation, treating the zero quaternion as identity so that a State
// literal without a rotation behaves.
func (s State) rotation() mgl32.Quat {
	if s.Rotation.W == 0 && s.Rotation.V.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	return s.Rotation
}

// Source resolves a Handle into the current state of its body.
type Source interface {
	Body(h Handle) (State, bool)
}
