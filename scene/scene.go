// Package scene is an in-memory collection of box colliders. It answers the ray probes issued by
// the locomotion controller and the overlap queries issued by the sim host.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/surface"
	"github.com/sasha-s/go-deadlock"
)

// Collider is a box in the scene. If Body is valid, Box is expressed relative to the body's
// position and follows it as it moves. Body rotation is not applied to the box.
type Collider struct {
	Box   cube.BBox
	Layer surface.Layer
	Body  body.Handle
}

// Box is a collider resolved to world space.
type Box struct {
	BBox  cube.BBox
	Layer surface.Layer
	Body  body.Handle
}

// Scene holds colliders and resolves body-attached ones through a body.Source.
type Scene struct {
	deadlock.RWMutex

	bodies    body.Source
	colliders []Collider
}

// New returns an empty scene. bodies may be nil if no collider is attached to a body.
func New(bodies body.Source) *Scene {
	return &Scene{bodies: bodies}
}

// Add inserts colliders into the scene.
func (s *Scene) Add(c ...Collider) {
	s.Lock()
	s.colliders = append(s.colliders, c...)
	s.Unlock()
}

// Len ...
func (s *Scene) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.colliders)
}

// Boxes returns every collider resolved to world space.
func (s *Scene) Boxes() []Box {
	s.RLock()
	defer s.RUnlock()

	boxes := make([]Box, 0, len(s.colliders))
	for _, c := range s.colliders {
		if bb, ok := s.resolve(c); ok {
			boxes = append(boxes, Box{BBox: bb, Layer: c.Layer, Body: c.Body})
		}
	}
	return boxes
}

// Nearby returns the world space colliders intersecting bb.
func (s *Scene) Nearby(bb cube.BBox) []Box {
	s.RLock()
	defer s.RUnlock()

	var boxes []Box
	for _, c := range s.colliders {
		world, ok := s.resolve(c)
		if !ok || !intersects(world, bb) {
			continue
		}
		boxes = append(boxes, Box{BBox: world, Layer: c.Layer, Body: c.Body})
	}
	return boxes
}

// Raycast casts a ray from origin along dir for at most dist, considering only solid colliders
// whose layer is in mask. It returns the nearest hit.
func (s *Scene) Raycast(origin, dir mgl32.Vec3, dist float32, mask surface.Mask) (locomotion.Hit, bool) {
	var (
		best  locomotion.Hit
		found bool
	)
	if dist <= 0 || dir.LenSqr() == 0 {
		return best, false
	}
	end := origin.Add(dir.Normalize().Mul(dist))

	s.RLock()
	defer s.RUnlock()
	for _, c := range s.colliders {
		if !mask.Has(c.Layer) || !c.Layer.Solid() {
			continue
		}
		world, ok := s.resolve(c)
		if !ok {
			continue
		}
		res, ok := trace.BBoxIntercept(world, origin, end)
		if !ok {
			continue
		}
		pos := res.Position()
		d := pos.Sub(origin).Len()
		if found && d >= best.Distance {
			continue
		}
		best = locomotion.Hit{
			Point:    pos,
			Normal:   faceNormal(world, pos),
			Layer:    c.Layer,
			Body:     c.Body,
			Distance: d,
		}
		found = true
	}
	return best, found
}

func (s *Scene) resolve(c Collider) (cube.BBox, bool) {
	if !c.Body.Valid() {
		return c.Box, true
	}
	if s.bodies == nil {
		return cube.BBox{}, false
	}
	st, ok := s.bodies.Body(c.Body)
	if !ok {
		return cube.BBox{}, false
	}
	return c.Box.Translate(st.Position), true
}

// faceNormal returns the outward normal of the box face closest to a point on its surface.
func faceNormal(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	min, max := bb.Min(), bb.Max()
	normal := mgl32.Vec3{0, 1, 0}
	best := float32(math32.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if d := math32.Abs(p[axis] - min[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if d := math32.Abs(max[axis] - p[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal
}

func intersects(a, b cube.BBox) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if amax[i] <= bmin[i] || bmax[i] <= amin[i] {
			return false
		}
	}
	return true
}
