// Package surface holds the collision layer classification shared by colliders, probes and the
// contact aggregator.
package surface

// Layer is the surface class of a collider, in the range [0, 31].
type Layer uint8

const (
	Default Layer = iota
	Ground
	Stairs
	Climb
	Platform
	Water
)

// Mask is a set of layers.
type Mask uint32

// All is the mask matching every layer.
const All = ^Mask(0)

// MaskOf returns a mask containing the given layers.
func MaskOf(layers ...Layer) Mask {
	var m Mask
	for _, l := range layers {
		m |= 1 << (l & 31)
	}
	return m
}

// Has reports whether the layer is part of the mask.
func (m Mask) Has(l Layer) bool {
	return m&(1<<(l&31)) != 0
}

// Solid reports whether colliders on the layer block movement and ray probes. Water colliders
// are volumes that only tell a body it is submerged.
func (l Layer) Solid() bool {
	return l != Water
}

// String ...
func (l Layer) String() string {
	switch l {
	case Default:
		return "default"
	case Ground:
		return "ground"
	case Stairs:
		return "stairs"
	case Climb:
		return "climb"
	case Platform:
		return "platform"
	case Water:
		return "water"
	}
	return "custom"
}
