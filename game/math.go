package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// WorldRight is the +X axis used when no input space is supplied.
	WorldRight = mgl32.Vec3{1, 0, 0}
	// WorldUp is the +Y axis used when a gravity field has no direction.
	WorldUp = mgl32.Vec3{0, 1, 0}
	// WorldForward is the +Z axis used when no input space is supplied.
	WorldForward = mgl32.Vec3{0, 0, 1}
)

// SafeNormalize normalizes the vector, returning the zero vector if it is too short to have a
// meaningful direction.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= NormalizeEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectDirectionOnPlane removes the component of direction along normal and normalizes the
// remainder.
func ProjectDirectionOnPlane(direction, normal mgl32.Vec3) mgl32.Vec3 {
	return SafeNormalize(direction.Sub(normal.Mul(direction.Dot(normal))))
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// ClampMagnitude2 shortens v so that its length does not exceed max.
func ClampMagnitude2(v mgl32.Vec2, max float32) mgl32.Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// CosDeg returns the cosine of an angle given in degrees.
func CosDeg(deg float32) float32 {
	return math32.Cos(mgl32.DegToRad(deg))
}

// LookRotation returns the rotation whose local +Z axis points along forward and whose local +Y
// axis is as close to up as possible. If forward is parallel to up, any perpendicular is chosen.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	up = SafeNormalize(up)
	if up.LenSqr() == 0 {
		up = WorldUp
	}
	f := ProjectDirectionOnPlane(forward, up)
	if f.LenSqr() == 0 {
		f = ProjectDirectionOnPlane(WorldForward, up)
		if f.LenSqr() == 0 {
			f = ProjectDirectionOnPlane(WorldRight, up)
		}
	}
	r := up.Cross(f)
	return mgl32.Mat4ToQuat(mgl32.Mat4{
		r.X(), r.Y(), r.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		f.X(), f.Y(), f.Z(), 0,
		0, 0, 0, 1,
	}).Normalize()
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}
