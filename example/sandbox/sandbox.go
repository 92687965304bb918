package main

import (
	"flag"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/gravity"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/sim"
	"github.com/oomph-ac/locomotion/stamina"
	"github.com/oomph-ac/locomotion/surface"
	"github.com/sirupsen/logrus"
)

var (
	settingsPath = flag.String("settings", "sandbox.toml", "path of the settings file, created with defaults if missing (.toml or .yaml)")
	ticks        = flag.Int("ticks", 500, "number of ticks to simulate")
	realtime     = flag.Bool("realtime", false, "pace ticks at the configured tick rate")
	debug        = flag.Bool("debug", false, "log every controller step")
)

// The following program runs a handful of scripted agents through a small scene and logs what they do.
func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if err := run(log); err != nil {
		log.Fatal(err)
	}
}

func run(log *logrus.Logger) error {
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return oerror.New("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := settings.LoadOrCreate(*settingsPath)
	if err != nil {
		return oerror.New("unable to load settings: %v", err)
	}

	w, err := sim.NewWorld(s.Simulation, log)
	if err != nil {
		return oerror.New("unable to create world: %v", err)
	}
	defer w.Close()
	buildScene(w)

	var ctrlLog *logrus.Logger
	if *debug {
		ctrlLog = log
	}
	for _, def := range agents() {
		pool := stamina.NewPool(s.Stamina)
		c, err := locomotion.New(s.Movement, locomotion.Dependencies{
			Gravity:  gravity.Earth(),
			Probe:    w.Scene(),
			Bodies:   w.Bodies(),
			Resource: pool,
			Log:      ctrlLog,
		})
		if err != nil {
			return oerror.New("unable to create controller for %s: %v", def.name, err)
		}
		if err := w.AddAgent(&sim.Agent{
			Name:        def.name,
			Controller:  c,
			Stamina:     pool,
			Driver:      def.driver,
			Size:        mgl32.Vec3{0.6, 1.8, 0.6},
			Position:    def.position,
			Orientation: mgl32.QuatRotate(def.yaw, mgl32.Vec3{0, 1, 0}),
		}); err != nil {
			return err
		}
	}

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Second / time.Duration(s.Simulation.TickRate))
		defer ticker.Stop()
	}
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if ticker != nil {
			<-ticker.C
		}
		w.Tick()
		if w.CurrentTick()%uint64(s.Simulation.TickRate) == 0 {
			summarize(log, w)
		}
	}
	log.WithFields(logrus.Fields{
		"ticks":   w.CurrentTick(),
		"elapsed": time.Since(start),
		"digest":  w.Digest(),
	}).Info("simulation finished")
	return nil
}

// buildScene adds a floor, a flight of stairs, a wedge of two steep walls, a pool of water and a
// moving platform.
func buildScene(w *sim.World) {
	s := w.Scene()
	s.Add(scene.Collider{Box: cube.Box(-40, -1, -40, 40, 0, 40), Layer: surface.Ground})
	for i := 0; i < 6; i++ {
		step := float32(i)
		s.Add(scene.Collider{Box: cube.Box(-2, 0, 5+step, 2, 0.25*(step+1), 6+step), Layer: surface.Stairs})
	}
	s.Add(scene.Collider{Box: cube.Box(-12, 0, -4, -11, 6, 4)})
	s.Add(scene.Collider{Box: cube.Box(-15, 0, -4, -14, 6, 4)})
	s.Add(scene.Collider{Box: cube.Box(-8, 0, 8, -2, 1.5, 14), Layer: surface.Water})
	w.AddPlatform(&sim.Platform{
		Origin: mgl32.Vec3{12, 0.5, 0},
		Extent: mgl32.Vec3{0, 0, 6},
		Period: 6,
	}, cube.Box(-2, -0.5, -2, 2, 0, 2), surface.Platform)
}

type agentDef struct {
	name     string
	position mgl32.Vec3
	yaw      float32
	driver   sim.Driver
}

func agents() []agentDef {
	return []agentDef{
		{name: "climber", position: mgl32.Vec3{0, 0.9, 0}, driver: sim.DriverFunc(func(tick uint64, a *sim.Agent) locomotion.Intent {
			return locomotion.Intent{Move: mgl32.Vec2{0, 1}, Run: tick < 100}
		})},
		{name: "hopper", position: mgl32.Vec3{-5, 0.9, -10}, driver: sim.DriverFunc(func(tick uint64, a *sim.Agent) locomotion.Intent {
			return locomotion.Intent{Move: mgl32.Vec2{1, 0}, Jump: tick%30 == 0}
		})},
		{name: "rider", position: mgl32.Vec3{12, 1.4, 0}},
		{name: "circler", position: mgl32.Vec3{5, 0.9, -5}, driver: sim.DriverFunc(func(tick uint64, a *sim.Agent) locomotion.Intent {
			angle := float32(tick) * 0.04
			return locomotion.Intent{Move: mgl32.Vec2{math32.Cos(angle), math32.Sin(angle)}, AltGait: tick%200 > 150}
		})},
		{name: "digger", position: mgl32.Vec3{-5, 0.9, 10}, yaw: mgl32.DegToRad(180), driver: sim.DriverFunc(func(tick uint64, a *sim.Agent) locomotion.Intent {
			return locomotion.Intent{Action: tick%150 == 10}
		})},
	}
}

func summarize(log *logrus.Logger, w *sim.World) {
	for _, a := range w.Agents() {
		res := a.Last()
		log.WithFields(logrus.Fields{
			"agent":    a.Name,
			"tick":     w.CurrentTick(),
			"state":    res.State,
			"gait":     res.Gait,
			"position": game.RoundVec32(a.Position, 3),
			"speed":    game.Round32(a.Velocity.Len(), 3),
			"stamina":  game.Round32(a.Stamina.Current(), 1),
			"action":   a.Controller.PerformingAction(),
			"swimming": a.Controller.InWater(),
		}).Info("agent summary")
	}
}
