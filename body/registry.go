package body

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sasha-s/go-deadlock"
)

// Registry stores bodies by Handle in insertion order. It is safe for concurrent use: the sim
// host moves bodies between ticks while controllers read them during a tick.
type Registry struct {
	deadlock.RWMutex

	next   Handle
	bodies *orderedmap.OrderedMap[Handle, State]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bodies: orderedmap.NewOrderedMap[Handle, State]()}
}

// Add registers a body and returns its Handle.
func (r *Registry) Add(s State) Handle {
	r.Lock()
	defer r.Unlock()

	r.next++
	r.bodies.Set(r.next, s)
	return r.next
}

// Remove deletes a body. Controllers still referencing the Handle will see it as missing.
func (r *Registry) Remove(h Handle) bool {
	r.Lock()
	defer r.Unlock()
	return r.bodies.Delete(h)
}

// Body ...
func (r *Registry) Body(h Handle) (State, bool) {
	if !h.Valid() {
		return State{}, false
	}
	r.RLock()
	defer r.RUnlock()
	return r.bodies.Get(h)
}

// Move sets the transform of a registered body. It returns false if the body does not exist.
func (r *Registry) Move(h Handle, pos mgl32.Vec3, rot mgl32.Quat) bool {
	r.Lock()
	defer r.Unlock()

	s, ok := r.bodies.Get(h)
	if !ok {
		return false
	}
	s.Position, s.Rotation = pos, rot
	r.bodies.Set(h, s)
	return true
}

// Handles returns all registered handles in insertion order.
func (r *Registry) Handles() []Handle {
	r.RLock()
	defer r.RUnlock()
	return r.bodies.Keys()
}

// Len ...
func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return r.bodies.Len()
}
