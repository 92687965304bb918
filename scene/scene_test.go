package scene

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
	"github.com/oomph-ac/locomotion/surface"
)

var down = mgl32.Vec3{0, -1, 0}

func floorScene() *Scene {
	s := New(nil)
	s.Add(Collider{Box: cube.Box(-5, -1, -5, 5, 0, 5), Layer: surface.Ground})
	return s
}

func TestRaycastHitsFloor(t *testing.T) {
	s := floorScene()
	hit, ok := s.Raycast(mgl32.Vec3{1, 2, 1}, down, 5, surface.All)
	if !ok {
		t.Fatalf("expected ray to hit the floor")
	}
	if !hit.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("expected +Y normal, got %v", hit.Normal)
	}
	if !hit.Point.ApproxEqualThreshold(mgl32.Vec3{1, 0, 1}, 1e-4) || hit.Distance < 1.999 || hit.Distance > 2.001 {
		t.Fatalf("expected hit at (1, 0, 1) after 2 units, got %v after %v", hit.Point, hit.Distance)
	}
	if hit.Layer != surface.Ground || hit.Body.Valid() {
		t.Fatalf("expected static ground hit, got layer %v body %v", hit.Layer, hit.Body)
	}
}

func TestRaycastMissesBeyondDistance(t *testing.T) {
	s := floorScene()
	if _, ok := s.Raycast(mgl32.Vec3{0, 3, 0}, down, 2.5, surface.All); ok {
		t.Fatalf("expected ray to stop short of the floor")
	}
	if _, ok := s.Raycast(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, 1, 0}, 10, surface.All); ok {
		t.Fatalf("expected upward ray to miss")
	}
}

func TestRaycastRespectsMask(t *testing.T) {
	s := floorScene()
	s.Add(Collider{Box: cube.Box(-1, 0, -1, 1, 1, 1), Layer: surface.Stairs})

	hit, ok := s.Raycast(mgl32.Vec3{0, 3, 0}, down, 5, surface.All)
	if !ok || hit.Layer != surface.Stairs {
		t.Fatalf("expected nearest hit on the stairs, got %v (%v)", hit.Layer, ok)
	}
	hit, ok = s.Raycast(mgl32.Vec3{0, 3, 0}, down, 5, surface.MaskOf(surface.Ground))
	if !ok || hit.Layer != surface.Ground {
		t.Fatalf("expected masked ray to pass through the stairs, got %v (%v)", hit.Layer, ok)
	}
}

func TestRaycastSideNormal(t *testing.T) {
	s := New(nil)
	s.Add(Collider{Box: cube.Box(2, 0, -1, 3, 2, 1)})
	hit, ok := s.Raycast(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, 5, surface.All)
	if !ok || !hit.Normal.ApproxEqual(mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("expected hit on the -X face, got %v (%v)", hit.Normal, ok)
	}
}

func TestAttachedColliderFollowsBody(t *testing.T) {
	reg := body.NewRegistry()
	h := reg.Add(body.State{Position: mgl32.Vec3{0, 0, 0}, Kinematic: true})
	s := New(reg)
	s.Add(Collider{Box: cube.Box(-1, -0.5, -1, 1, 0, 1), Layer: surface.Platform, Body: h})

	reg.Move(h, mgl32.Vec3{10, 1, 0}, mgl32.QuatIdent())
	if _, ok := s.Raycast(mgl32.Vec3{0, 3, 0}, down, 5, surface.All); ok {
		t.Fatalf("expected the old platform position to be empty")
	}
	hit, ok := s.Raycast(mgl32.Vec3{10, 3, 0}, down, 5, surface.All)
	if !ok || hit.Body != h || hit.Distance < 1.999 || hit.Distance > 2.001 {
		t.Fatalf("expected hit on the moved platform, got %+v (%v)", hit, ok)
	}

	reg.Remove(h)
	if len(s.Boxes()) != 0 {
		t.Fatalf("expected colliders of removed bodies to be skipped")
	}
}

func TestNearby(t *testing.T) {
	s := floorScene()
	s.Add(Collider{Box: cube.Box(10, 0, 10, 11, 1, 11)})
	if s.Len() != 2 {
		t.Fatalf("expected 2 colliders, got %d", s.Len())
	}

	boxes := s.Nearby(cube.Box(-0.3, -0.1, -0.3, 0.3, 1.7, 0.3))
	if len(boxes) != 1 || boxes[0].Layer != surface.Ground {
		t.Fatalf("expected only the floor nearby, got %v", boxes)
	}
	// Touching faces do not count as overlapping.
	if boxes = s.Nearby(cube.Box(-0.3, 0, -0.3, 0.3, 1.8, 0.3)); len(boxes) != 0 {
		t.Fatalf("expected a box resting on the floor not to overlap it, got %v", boxes)
	}
}

func TestRaycastIgnoresWater(t *testing.T) {
	s := floorScene()
	s.Add(Collider{Box: cube.Box(-5, 0, -5, 5, 3, 5), Layer: surface.Water})
	hit, ok := s.Raycast(mgl32.Vec3{0, 5, 0}, down, 10, surface.All)
	if !ok || hit.Layer != surface.Ground {
		t.Fatalf("expected ray to pass through the water onto the floor, got %v (%v)", hit.Layer, ok)
	}
	if len(s.Nearby(cube.Box(-0.3, 0.5, -0.3, 0.3, 2, 0.3))) != 1 {
		t.Fatalf("expected the water volume to be reported by Nearby")
	}
}
