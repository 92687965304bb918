package sim

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/stamina"
	"github.com/oomph-ac/locomotion/utils"
)

// Driver supplies the intent of an agent for every tick.
type Driver interface {
	Intent(tick uint64, a *Agent) locomotion.Intent
}

// DriverFunc is a function implementing Driver.
type DriverFunc func(tick uint64, a *Agent) locomotion.Intent

// Intent ...
func (f DriverFunc) Intent(tick uint64, a *Agent) locomotion.Intent {
	return f(tick, a)
}

// Record is the state of an agent after a tick.
type Record struct {
	Tick     uint64
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	State    locomotion.State
	Gait     locomotion.Gait
	Jumped   bool
}

// Agent is a box shaped body driven by a locomotion controller.
type Agent struct {
	Name       string
	Controller *locomotion.Controller
	// Stamina, if set, is ticked with the controller's running state. It should also be the
	// controller's resource gate.
	Stamina *stamina.Pool
	Driver  Driver

	// Size is the full extent of the agent's box, centred on Position.
	Size     mgl32.Vec3
	Position mgl32.Vec3
	Velocity mgl32.Vec3

	// Orientation is the agent's initial facing. The zero quaternion keeps the controller's own.
	Orientation mgl32.Quat

	contacts []locomotion.Contact
	last     locomotion.Result
	history  *utils.CircularQueue[Record]
}

// BBox returns the agent's box in world space.
func (a *Agent) BBox() cube.BBox {
	min := a.Position.Sub(a.Size.Mul(0.5))
	max := a.Position.Add(a.Size.Mul(0.5))
	return cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
}

// Last returns the result of the agent's last controller step.
func (a *Agent) Last() locomotion.Result {
	return a.last
}

// History returns the agent's step records from oldest to newest.
func (a *Agent) History() []Record {
	if a.history == nil {
		return nil
	}
	return a.history.Slice()
}
