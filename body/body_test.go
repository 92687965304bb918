package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformRoundTrip(t *testing.T) {
	s := State{
		Position: mgl32.Vec3{3, 1, -2},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
	}
	world := mgl32.Vec3{4, 2, -2}
	local := s.InverseTransformPoint(world)
	if back := s.TransformPoint(local); back.Sub(world).Len() > 1e-5 {
		t.Fatalf("round trip mismatch: %v -> %v -> %v", world, local, back)
	}
	// A point one unit along +X in world space sits at +Z locally after a 90 degree yaw.
	if local.Sub(mgl32.Vec3{0, 1, 1}).Len() > 1e-5 {
		t.Fatalf("unexpected local point %v", local)
	}
}

func TestZeroRotationIsIdentity(t *testing.T) {
	s := State{Position: mgl32.Vec3{1, 0, 0}}
	if p := s.TransformPoint(mgl32.Vec3{0, 2, 0}); !p.ApproxEqual(mgl32.Vec3{1, 2, 0}) {
		t.Fatalf("expected translation only, got %v", p)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := r.Add(State{Mass: 10})
	b := r.Add(State{Kinematic: true})
	if a == b || !a.Valid() || !b.Valid() {
		t.Fatalf("expected two distinct valid handles, got %v and %v", a, b)
	}

	if !r.Move(b, mgl32.Vec3{0, 5, 0}, mgl32.QuatIdent()) {
		t.Fatalf("expected move to succeed")
	}
	s, ok := r.Body(b)
	if !ok || !s.Kinematic || s.Position.Y() != 5 {
		t.Fatalf("unexpected state after move: %+v (ok=%v)", s, ok)
	}

	if _, ok := r.Body(None); ok {
		t.Fatalf("the zero handle must never resolve")
	}

	handles := r.Handles()
	if len(handles) != 2 || handles[0] != a || handles[1] != b {
		t.Fatalf("expected insertion order [%v %v], got %v", a, b, handles)
	}

	r.Remove(a)
	if _, ok := r.Body(a); ok || r.Len() != 1 {
		t.Fatalf("expected body %v to be removed", a)
	}
	if r.Move(a, mgl32.Vec3{}, mgl32.QuatIdent()) {
		t.Fatalf("moving a removed body should fail")
	}
}
