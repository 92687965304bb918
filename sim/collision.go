package sim

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/scene"
)

// clipResult is the outcome of clipping a moving box's displacement against a stationary box.
type clipResult struct {
	velocity mgl32.Vec3
	// normal points from the stationary box toward the moving box. It is only set if hit is true.
	normal      mgl32.Vec3
	penetration float32
	hit         bool
}

// clipCollide clips the displacement of moving so that it does not enter stationary. If the boxes
// already overlap, the displacement is instead changed to push moving out along the axis of
// least penetration.
func clipCollide(stationary, moving cube.BBox, velocity mgl32.Vec3) (result clipResult) {
	result.velocity = velocity
	if stationary.Min() == stationary.Max() {
		return
	}

	var (
		penetrations       [3]float32
		signedPenetrations [3]float32
		normalDirs         [3]float32
	)
	separatingAxes, separatingAxis := 0, 0
	minPenetration := float32(math32.MaxFloat32)

	for i := 0; i < 3; i++ {
		lower := moving.Max()[i] - stationary.Min()[i]
		upper := stationary.Max()[i] - moving.Min()[i]
		if math32.Abs(lower) <= 1e-7 {
			lower = 0
		}
		if math32.Abs(upper) <= 1e-7 {
			upper = 0
		}
		lowerPositive, upperPositive := math32.Max(0, lower), math32.Max(0, upper)

		switch {
		case lowerPositive == 0:
			signedPenetrations[i], normalDirs[i] = lower, -1
			separatingAxes++
			separatingAxis = i
		case upperPositive == 0:
			signedPenetrations[i], normalDirs[i] = upper, 1
			separatingAxes++
			separatingAxis = i
		case lowerPositive < upperPositive:
			penetrations[i], signedPenetrations[i], normalDirs[i] = lowerPositive, lowerPositive, -1
		default:
			penetrations[i], signedPenetrations[i], normalDirs[i] = upperPositive, upperPositive, 1
		}

		if separatingAxes > 1 {
			return
		}
		minPenetration = math32.Min(minPenetration, penetrations[i])
	}

	if separatingAxes == 0 {
		// Already overlapping: push out along the shallowest axis.
		result.penetration = minPenetration
		best := 0
		for i := 1; i < 3; i++ {
			if penetrations[i] < penetrations[best] {
				best = i
			}
		}
		desired := penetrations[best] * normalDirs[best]
		if desired > 0 {
			result.velocity[best] = math32.Max(desired, velocity[best])
		} else {
			result.velocity[best] = math32.Min(desired, velocity[best])
		}
		result.normal[best] = normalDirs[best]
		result.hit = true
		return
	}

	swept := signedPenetrations[separatingAxis] - normalDirs[separatingAxis]*velocity[separatingAxis]
	if swept <= 0 {
		return
	}
	result.velocity[separatingAxis] = signedPenetrations[separatingAxis] * normalDirs[separatingAxis]
	result.normal[separatingAxis] = normalDirs[separatingAxis]
	result.hit = true
	return
}

// axisOrder is the order in which displacement components are resolved. Vertical movement goes
// first so that horizontal movement is resolved at the height the body ends up at.
var axisOrder = [3]int{1, 0, 2}

// collide moves bb by displacement one axis at a time against boxes. It returns the displacement
// actually allowed and a contact for every box that clipped it.
func collide(bb cube.BBox, displacement mgl32.Vec3, boxes []scene.Box) (mgl32.Vec3, []locomotion.Contact) {
	var (
		allowed  mgl32.Vec3
		contacts []locomotion.Contact
	)
	for _, axis := range axisOrder {
		var v mgl32.Vec3
		v[axis] = displacement[axis]
		for _, b := range boxes {
			res := clipCollide(b.BBox, bb, v)
			if res.hit {
				contacts = append(contacts, locomotion.Contact{Normal: res.normal, Layer: b.Layer, Body: b.Body})
			}
			v = res.velocity
		}
		bb = bb.Translate(v)
		allowed = allowed.Add(v)
	}
	return allowed, contacts
}

// collideWithStep behaves like collide but, for a grounded body that was stopped horizontally,
// also tries to step up onto the obstacle by at most stepHeight. The stepped result is used if it
// lets the body travel further horizontally.
func collideWithStep(bb cube.BBox, displacement mgl32.Vec3, grounded bool, stepHeight float32, s *scene.Scene) (mgl32.Vec3, []locomotion.Contact) {
	boxes := solidNearby(s, bb.Extend(displacement).Grow(0.01))
	allowed, contacts := collide(bb, displacement, boxes)

	blocked := allowed.X() != displacement.X() || allowed.Z() != displacement.Z()
	landed := allowed.Y() != displacement.Y() && displacement.Y() < 0
	if stepHeight <= 0 || !blocked || !(grounded || landed) {
		return allowed, contacts
	}

	stepBoxes := solidNearby(s, bb.Extend(displacement).Extend(mgl32.Vec3{0, stepHeight}).Grow(0.01))
	up, _ := collide(bb, mgl32.Vec3{0, stepHeight}, stepBoxes)
	stepBB := bb.Translate(up)

	horizontal, stepContacts := collide(stepBB, mgl32.Vec3{displacement.X(), 0, displacement.Z()}, stepBoxes)
	stepBB = stepBB.Translate(horizontal)

	down, downContacts := collide(stepBB, mgl32.Vec3{0, -up.Y() + math32.Min(displacement.Y(), 0)}, stepBoxes)
	stepped := up.Add(horizontal).Add(down)

	if hzLenSqr(stepped) <= hzLenSqr(allowed) || len(solidNearby(s, bb.Translate(stepped).Grow(-1e-4))) != 0 {
		return allowed, contacts
	}
	return stepped, append(stepContacts, downContacts...)
}

// solidNearby returns the solid boxes intersecting bb.
func solidNearby(s *scene.Scene, bb cube.BBox) []scene.Box {
	boxes := s.Nearby(bb)
	solid := boxes[:0]
	for _, b := range boxes {
		if b.Layer.Solid() {
			solid = append(solid, b)
		}
	}
	return solid
}

func hzLenSqr(v mgl32.Vec3) float32 {
	return v.X()*v.X() + v.Z()*v.Z()
}
