// Package sim hosts locomotion controllers in a fixed-step box world. Each tick it moves the
// kinematic platforms, advances every agent's controller with the contacts found during the
// agent's previous move, then moves the agent through the scene with axis-by-axis collision.
package sim

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/body"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/surface"
	"github.com/oomph-ac/locomotion/utils"
	"github.com/oomph-ac/locomotion/worker"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"
)

// World is a fixed-step simulation of agents moving through a scene. Tick must not be called
// concurrently with itself or with the mutating methods of World.
type World struct {
	cfg Config
	log *logrus.Logger

	bodies    *body.Registry
	scene     *scene.Scene
	platforms []*Platform
	agents    *orderedmap.OrderedMap[string, *Agent]

	pool   *worker.Pool
	tick   atomic.Uint64
	closed atomic.Bool
}

// NewWorld creates an empty world. log may be nil.
func NewWorld(cfg Config, log *logrus.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	bodies := body.NewRegistry()
	w := &World{
		cfg:    cfg,
		log:    log,
		bodies: bodies,
		scene:  scene.New(bodies),
		agents: orderedmap.NewOrderedMap[string, *Agent](),
	}
	if cfg.Parallel {
		w.pool = worker.New(0)
	}
	return w, nil
}

// Scene ...
func (w *World) Scene() *scene.Scene {
	return w.scene
}

// Bodies ...
func (w *World) Bodies() *body.Registry {
	return w.bodies
}

// Config ...
func (w *World) Config() Config {
	return w.cfg
}

// AddPlatform registers a kinematic platform whose collider box is given relative to the
// platform's position. The platform's body handle is filled in.
func (w *World) AddPlatform(p *Platform, box cube.BBox, layer surface.Layer) *Platform {
	p.Body = w.bodies.Add(body.State{Position: p.PositionAt(0), Rotation: p.RotationAt(0), Kinematic: true})
	w.scene.Add(scene.Collider{Box: box, Layer: layer, Body: p.Body})
	w.platforms = append(w.platforms, p)
	return p
}

// AddAgent adds an agent to the world. Agent names must be unique.
func (w *World) AddAgent(a *Agent) error {
	if a.Controller == nil {
		return oerror.New("agent %q has no controller", a.Name)
	}
	if _, ok := w.agents.Get(a.Name); ok {
		return oerror.New("agent %q already exists", a.Name)
	}
	if a.Size == (mgl32.Vec3{}) {
		return oerror.New("agent %q has no size", a.Name)
	}
	if a.Orientation != (mgl32.Quat{}) {
		a.Controller.SetOrientation(a.Orientation)
	}
	a.history = utils.NewCircularQueue[Record](w.cfg.HistorySize)
	w.agents.Set(a.Name, a)
	w.log.WithFields(logrus.Fields{"agent": a.Name, "position": a.Position}).Info("agent added")
	return nil
}

// RemoveAgent ...
func (w *World) RemoveAgent(name string) bool {
	return w.agents.Delete(name)
}

// Agent ...
func (w *World) Agent(name string) (*Agent, bool) {
	return w.agents.Get(name)
}

// Agents returns the agents in the order they were added.
func (w *World) Agents() []*Agent {
	agents := make([]*Agent, 0, w.agents.Len())
	for el := w.agents.Front(); el != nil; el = el.Next() {
		agents = append(agents, el.Value)
	}
	return agents
}

// CurrentTick returns the number of ticks run so far.
func (w *World) CurrentTick() uint64 {
	return w.tick.Load()
}

// Tick runs a single fixed step of the world.
func (w *World) Tick() {
	if w.closed.Load() {
		return
	}
	tick := w.tick.Inc()
	dt := w.cfg.StepDuration()
	now := float32(tick) * dt

	for _, p := range w.platforms {
		w.bodies.Move(p.Body, p.PositionAt(now), p.RotationAt(now))
	}

	agents := w.Agents()
	if w.pool == nil || len(agents) < 2 {
		for _, a := range agents {
			w.stepAgent(a, tick, dt)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(agents))
	for _, a := range agents {
		w.pool.Submit(func() {
			defer wg.Done()
			w.stepAgent(a, tick, dt)
		})
	}
	wg.Wait()
}

// Run runs n ticks.
func (w *World) Run(n int) {
	for i := 0; i < n; i++ {
		w.Tick()
	}
}

// stepAgent advances a single agent. Agents only read shared state, so stepAgent may run for
// several agents at once.
func (w *World) stepAgent(a *Agent, tick uint64, dt float32) {
	var intent locomotion.Intent
	if a.Driver != nil {
		intent = a.Driver.Intent(tick, a)
	}

	prev := a.last.State
	a.Controller.SetInWater(w.submerged(a))
	res := a.Controller.Advance(locomotion.Step{
		Duration: dt,
		Position: a.Position,
		Velocity: a.Velocity,
		Intent:   intent,
		Contacts: a.contacts,
	})
	a.last = res
	if a.Stamina != nil {
		a.Stamina.Tick(dt, a.Controller.Running() && intent.Move != (mgl32.Vec2{}))
	}
	a.Controller.UpdateOrientation(dt, a.Position, intent.Move)

	displacement := res.Velocity.Mul(dt)
	allowed, contacts := collideWithStep(a.BBox(), displacement, res.State == locomotion.StateGrounded, w.cfg.StepHeight, w.scene)
	a.Position = a.Position.Add(allowed)
	a.contacts = contacts

	vel := res.Velocity
	for axis := 0; axis < 3; axis++ {
		if allowed[axis] != displacement[axis] {
			vel[axis] = 0
		}
	}
	a.Velocity = vel

	if a.history != nil && a.history.Cap() > 0 {
		_ = a.history.Append(Record{
			Tick:     tick,
			Position: a.Position,
			Velocity: a.Velocity,
			State:    res.State,
			Gait:     res.Gait,
			Jumped:   res.Jumped,
		})
	}
	if res.State != prev && w.log.IsLevelEnabled(logrus.DebugLevel) {
		w.log.WithFields(logrus.Fields{
			"agent": a.Name,
			"tick":  tick,
			"from":  prev,
			"to":    res.State,
		}).Debug("grounding state changed")
	}
	if res.Jumped {
		w.log.WithFields(logrus.Fields{"agent": a.Name, "tick": tick, "phase": a.Controller.JumpPhase()}).Debug("agent jumped")
	}
}

// submerged reports whether the agent's box overlaps a water collider.
func (w *World) submerged(a *Agent) bool {
	for _, b := range w.scene.Nearby(a.BBox()) {
		if b.Layer == surface.Water {
			return true
		}
	}
	return false
}

// Digest hashes the position, velocity and grounding state of every agent. Two worlds built and
// driven the same way produce the same digest.
func (w *World) Digest() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 64)
	for _, a := range w.Agents() {
		buf = buf[:0]
		buf = append(buf, a.Name...)
		for _, v := range [2]mgl32.Vec3{a.Position, a.Velocity} {
			for _, f := range v {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
			}
		}
		buf = append(buf, byte(a.last.State))
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Close stops the world. Further calls to Tick are no-ops.
func (w *World) Close() {
	if !w.closed.CompareAndSwap(false, true) {
		return
	}
	if w.pool != nil {
		w.pool.Close()
	}
}
