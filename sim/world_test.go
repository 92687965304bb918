package sim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/gravity"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/stamina"
	"github.com/oomph-ac/locomotion/surface"
)

var agentSize = mgl32.Vec3{0.6, 1.8, 0.6}

func newWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("failed to create world: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func addFloor(w *World) {
	w.Scene().Add(scene.Collider{Box: cube.Box(-50, -1, -50, 50, 0, 50), Layer: surface.Ground})
}

func addAgent(t *testing.T, w *World, name string, pos mgl32.Vec3, driver Driver) *Agent {
	t.Helper()
	c, err := locomotion.New(locomotion.DefaultConfig(), locomotion.Dependencies{
		Gravity: gravity.Earth(),
		Probe:   w.Scene(),
		Bodies:  w.Bodies(),
	})
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	a := &Agent{Name: name, Controller: c, Driver: driver, Size: agentSize, Position: pos}
	if err := w.AddAgent(a); err != nil {
		t.Fatalf("failed to add agent: %v", err)
	}
	return a
}

func forward(tick uint64, a *Agent) locomotion.Intent {
	return locomotion.Intent{Move: mgl32.Vec2{0, 1}}
}

func TestRestingAgentStaysPut(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	start := mgl32.Vec3{0, 0.9, 0}
	a := addAgent(t, w, "rest", start, nil)

	w.Run(50)
	if !a.Controller.Grounded() {
		t.Fatalf("expected resting agent to be grounded, got %v", a.Controller.State())
	}
	if !a.Position.ApproxEqualThreshold(start, 1e-4) {
		t.Fatalf("expected agent to stay at %v, got %v", start, a.Position)
	}
	if a.Velocity != (mgl32.Vec3{}) {
		t.Fatalf("expected no velocity, got %v", a.Velocity)
	}
}

func TestWalkingAgentReachesWalkSpeed(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	a := addAgent(t, w, "walker", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))

	w.Run(50)
	if !a.Controller.Grounded() {
		t.Fatalf("expected walking agent to stay grounded")
	}
	if want := a.Controller.Config().WalkSpeed; math32.Abs(a.Velocity.Z()-want) > 1e-3 {
		t.Fatalf("expected walk speed %v, got %v", want, a.Velocity.Z())
	}
	if math32.Abs(a.Position.Y()-0.9) > 1e-3 {
		t.Fatalf("expected agent to stay on the floor, got y=%v", a.Position.Y())
	}
}

func TestFallingAgentLands(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	a := addAgent(t, w, "faller", mgl32.Vec3{0, 3, 0}, nil)

	w.Tick()
	if a.Controller.Grounded() {
		t.Fatalf("expected agent to start airborne")
	}
	w.Run(100)
	if !a.Controller.Grounded() || math32.Abs(a.Position.Y()-0.9) > 1e-3 {
		t.Fatalf("expected agent to land on the floor, got %v at %v", a.Controller.State(), a.Position)
	}
}

func TestWallStopsAgent(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	w.Scene().Add(scene.Collider{Box: cube.Box(-5, 0, 3, 5, 4, 4)})
	a := addAgent(t, w, "walker", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))

	w.Run(100)
	if a.Position.Z() > 3-agentSize.Z()/2+1e-4 {
		t.Fatalf("expected wall to stop the agent, got z=%v", a.Position.Z())
	}
	if !a.Controller.Grounded() {
		t.Fatalf("expected agent pushing a wall to stay grounded")
	}
}

func TestAgentStepsUpLedge(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	w.Scene().Add(scene.Collider{Box: cube.Box(-5, 0, 2, 5, 0.25, 20), Layer: surface.Stairs})
	a := addAgent(t, w, "climber", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))

	w.Run(60)
	if a.Position.Z() < 3 {
		t.Fatalf("expected agent to walk onto the ledge, got z=%v", a.Position.Z())
	}
	if math32.Abs(a.Position.Y()-1.15) > 1e-2 {
		t.Fatalf("expected agent to stand on the ledge, got y=%v", a.Position.Y())
	}
}

func TestAgentRidesPlatform(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	p := w.AddPlatform(&Platform{Extent: mgl32.Vec3{3, 0, 0}, Period: 4}, cube.Box(-2, -0.5, -2, 2, 0, 2), surface.Platform)
	a := addAgent(t, w, "rider", mgl32.Vec3{0, 0.9, 0}, nil)

	for i := 0; i < 100; i++ {
		w.Tick()
		st, _ := w.Bodies().Body(p.Body)
		if math32.Abs(a.Position.X()-st.Position.X()) > 0.6 {
			t.Fatalf("tick %d: rider fell behind the platform (rider=%v platform=%v)", i, a.Position, st.Position)
		}
	}
	if !a.Controller.Grounded() || a.Last().ConnectedBody != p.Body {
		t.Fatalf("expected rider to stand on the platform, got %v on %v", a.Controller.State(), a.Last().ConnectedBody)
	}
}

func buildDeterminismWorld(t *testing.T, parallel bool) *World {
	cfg := DefaultConfig()
	cfg.Parallel = parallel
	w := newWorld(t, cfg)
	addFloor(w)
	w.Scene().Add(scene.Collider{Box: cube.Box(-5, 0, 6, 5, 0.25, 12), Layer: surface.Stairs})
	w.AddPlatform(&Platform{Origin: mgl32.Vec3{10, 0.5, 0}, Extent: mgl32.Vec3{0, 0, 2}, Period: 3}, cube.Box(-2, -0.5, -2, 2, 0, 2), surface.Platform)

	addAgent(t, w, "walker", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))
	addAgent(t, w, "jumper", mgl32.Vec3{3, 0.9, 0}, DriverFunc(func(tick uint64, a *Agent) locomotion.Intent {
		return locomotion.Intent{Move: mgl32.Vec2{1, 0}, Jump: tick%40 == 0, Run: true}
	}))
	addAgent(t, w, "rider", mgl32.Vec3{10, 1.4, 0}, nil)
	addAgent(t, w, "circler", mgl32.Vec3{-3, 0.9, 0}, DriverFunc(func(tick uint64, a *Agent) locomotion.Intent {
		angle := float32(tick) * 0.05
		return locomotion.Intent{Move: mgl32.Vec2{math32.Cos(angle), math32.Sin(angle)}}
	}))
	return w
}

func TestParallelMatchesSerial(t *testing.T) {
	serial := buildDeterminismWorld(t, false)
	parallel := buildDeterminismWorld(t, true)
	for i := 0; i < 200; i++ {
		serial.Tick()
		parallel.Tick()
		if serial.Digest() != parallel.Digest() {
			t.Fatalf("tick %d: serial and parallel worlds diverged", i)
		}
	}
	if serial.CurrentTick() != 200 || parallel.CurrentTick() != 200 {
		t.Fatalf("expected 200 ticks, got %d and %d", serial.CurrentTick(), parallel.CurrentTick())
	}
}

func TestDigestChangesWithState(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	addAgent(t, w, "walker", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))
	before := w.Digest()
	w.Tick()
	if w.Digest() == before {
		t.Fatalf("expected digest to change after the agent moved")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 8
	w := newWorld(t, cfg)
	addFloor(w)
	a := addAgent(t, w, "walker", mgl32.Vec3{0, 0.9, 0}, DriverFunc(forward))

	w.Run(20)
	h := a.History()
	if len(h) != 8 {
		t.Fatalf("expected 8 records, got %d", len(h))
	}
	if h[0].Tick != 13 || h[7].Tick != 20 {
		t.Fatalf("expected records for ticks 13 to 20, got %d to %d", h[0].Tick, h[7].Tick)
	}
}

func TestStaminaDrainsWhileRunning(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	pool := stamina.NewPool(stamina.Config{Max: 1, RunDrain: 1, Regen: 0})
	c, err := locomotion.New(locomotion.DefaultConfig(), locomotion.Dependencies{Gravity: gravity.Earth(), Probe: w.Scene(), Resource: pool})
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	a := &Agent{Name: "runner", Controller: c, Stamina: pool, Size: agentSize, Position: mgl32.Vec3{0, 0.9, 0}, Driver: DriverFunc(func(uint64, *Agent) locomotion.Intent {
		return locomotion.Intent{Move: mgl32.Vec2{0, 1}, Run: true}
	})}
	if err := w.AddAgent(a); err != nil {
		t.Fatalf("failed to add agent: %v", err)
	}

	w.Tick()
	if !c.Running() {
		t.Fatalf("expected agent to run while it has stamina")
	}
	w.Run(60)
	if c.Running() || pool.HasResource() {
		t.Fatalf("expected agent to stop running once out of stamina (stamina=%v)", pool.Current())
	}
}

func TestAddAgentErrors(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addAgent(t, w, "a", mgl32.Vec3{}, nil)
	c, _ := locomotion.New(locomotion.DefaultConfig(), locomotion.Dependencies{Gravity: gravity.Earth()})

	if err := w.AddAgent(&Agent{Name: "a", Controller: c, Size: agentSize}); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
	if err := w.AddAgent(&Agent{Name: "b", Size: agentSize}); err == nil {
		t.Fatalf("expected missing controller to fail")
	}
	if err := w.AddAgent(&Agent{Name: "c", Controller: c}); err == nil {
		t.Fatalf("expected missing size to fail")
	}
	if !w.RemoveAgent("a") || len(w.Agents()) != 0 {
		t.Fatalf("expected agent to be removed")
	}
}

func TestClosedWorldDoesNotTick(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	w.Close()
	w.Tick()
	if w.CurrentTick() != 0 {
		t.Fatalf("expected closed world not to tick")
	}
}

func TestConfigValidate(t *testing.T) {
	if _, err := NewWorld(Config{}, nil); err == nil {
		t.Fatalf("expected zero tick rate to be rejected")
	}
	if err := (Config{TickRate: 20, StepHeight: -1}).Validate(); err == nil {
		t.Fatalf("expected negative step height to be rejected")
	}
}

func TestWaterVolumeDoesNotBlock(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	w.Scene().Add(scene.Collider{Box: cube.Box(-5, 0, -5, 5, 3, 5), Layer: surface.Water})
	start := mgl32.Vec3{0, 0.9, 0}
	swimmer := addAgent(t, w, "swimmer", start, nil)
	walker := addAgent(t, w, "walker", mgl32.Vec3{20, 0.9, 0}, nil)

	w.Run(20)
	if !swimmer.Controller.InWater() || !swimmer.Controller.Pose().Swim {
		t.Fatalf("expected agent inside the water volume to be in water")
	}
	if walker.Controller.InWater() {
		t.Fatalf("expected agent outside the water volume to be dry")
	}
	if !swimmer.Controller.Grounded() || swimmer.Position.Sub(start).Len() > 1e-4 {
		t.Fatalf("expected water not to block the agent, got %v at %v", swimmer.Controller.State(), swimmer.Position)
	}
}

func TestAgentKeepsInitialOrientation(t *testing.T) {
	w := newWorld(t, DefaultConfig())
	addFloor(w)
	c, err := locomotion.New(locomotion.DefaultConfig(), locomotion.Dependencies{Gravity: gravity.Earth(), Probe: w.Scene()})
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	a := &Agent{
		Name:        "turned",
		Controller:  c,
		Size:        agentSize,
		Position:    mgl32.Vec3{0, 0.9, 0},
		Orientation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
	}
	if err := w.AddAgent(a); err != nil {
		t.Fatalf("failed to add agent: %v", err)
	}

	w.Run(10)
	if facing := c.Orientation().Rotate(mgl32.Vec3{0, 0, 1}); facing.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-3 {
		t.Fatalf("expected resting agent to keep facing +X, got %v", facing)
	}
}
