// Package locomotion implements a per-step character locomotion controller for a body moving
// under arbitrary gravity. The host owns the physics integration and collision; each step it
// hands the controller the body's position, velocity, contacts and input intent, and gets back
// the velocity the body should carry into the next physics step.
package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/action"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/body"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/gravity"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/sirupsen/logrus"
)

// Dependencies are the external collaborators of a controller.
type Dependencies struct {
	// Gravity is the gravity field the body moves in. It is required.
	Gravity gravity.Field
	// Probe answers the ground snap ray. Snapping is disabled if it is nil.
	Probe Probe
	// Bodies resolves connected body handles. Moving platforms are ignored if it is nil.
	Bodies body.Source
	// Resource gates running and, optionally, jumping. A nil gate never runs out.
	Resource ResourceGate
	// Action is the timed ground action. If nil, one lasting Config.ActionDuration is created.
	Action *action.Timed
	// Log receives debug traces of each step. It may be nil.
	Log *logrus.Logger
}

// Intent is the input for a single step.
type Intent struct {
	// Move is the planar input, X along Right and Y along Forward. Its length is clamped to 1.
	Move mgl32.Vec2
	// Right and Forward define the input space, usually the camera's. Zero vectors fall back to
	// the world X and Z axes.
	Right, Forward mgl32.Vec3

	Jump    bool
	Run     bool
	AltGait bool
	Action  bool
}

// Step is everything the host provides for a single step.
type Step struct {
	// Duration of the step in seconds. It must be positive.
	Duration float32
	Position mgl32.Vec3
	// Velocity is the body's velocity as left by the host's physics step.
	Velocity mgl32.Vec3
	Intent   Intent
	// Contacts are the contacts reported since the previous step, in addition to any passed
	// through IngestContact.
	Contacts []Contact
}

// Result is the outcome of a step.
type Result struct {
	// Velocity is the velocity the host should give the body.
	Velocity mgl32.Vec3
	State    State
	Gait     Gait
	// ContactNormal is the averaged ground normal, or the up axis when not grounded.
	ContactNormal      mgl32.Vec3
	ConnectedBody      body.Handle
	ConnectionVelocity mgl32.Vec3
	Gravity            mgl32.Vec3
	Up                 mgl32.Vec3
	// Jumped is true if a jump impulse was applied this step.
	Jumped bool
}

// settled is the state of the controller at the end of the last step, before accumulators were
// cleared. It is what the accessors report.
type settled struct {
	state    State
	climbing bool
	gait     Gait
	move     mgl32.Vec2
	speed    float32
	action   bool
}

// Controller is the locomotion state machine of a single body. It is not safe for concurrent use;
// a host advances each controller from one goroutine at a time.
type Controller struct {
	cfg        Config
	thresholds thresholds

	field  gravity.Field
	probe  Probe
	bodies body.Source
	gate   ResourceGate
	action *action.Timed
	dbg    debugger

	velocity           mgl32.Vec3
	gravity, upAxis    mgl32.Vec3
	connectionVelocity mgl32.Vec3

	contactNormal, steepNormal, climbNormal, lastClimbNormal  mgl32.Vec3
	groundContactCount, steepContactCount, climbContactCount int

	stepsSinceLastGrounded, stepsSinceLastJump int
	jumpPhase                                  int
	speedOnJump                                float32

	connectedBody, previousConnectedBody             body.Handle
	connectionWorldPosition, connectionLocalPosition mgl32.Vec3

	pending []Contact

	orientation      mgl32.Quat
	controlsDisabled bool
	inWater          bool

	settled settled
}

// New creates a controller. The config is validated and copied.
func New(cfg Config, deps Dependencies) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Gravity == nil {
		return nil, oerror.New("a gravity field is required")
	}
	if deps.Resource == nil {
		deps.Resource = Unlimited{}
	}
	if deps.Action == nil {
		deps.Action = action.NewTimed(cfg.ActionDuration, nil)
	}
	return &Controller{
		cfg:         cfg,
		thresholds:  newThresholds(cfg),
		field:       deps.Gravity,
		probe:       deps.Probe,
		bodies:      deps.Bodies,
		gate:        deps.Resource,
		action:      deps.Action,
		dbg:         debugger{log: deps.Log},
		upAxis:      game.WorldUp,
		orientation: mgl32.QuatIdent(),
	}, nil
}

// Advance runs a single step of the controller and returns the velocity the body should have.
func (c *Controller) Advance(step Step) Result {
	assert.IsTrue(step.Duration > 0, "step duration must be positive (got %v)", step.Duration)
	dt := step.Duration

	sample := c.field.Sample(step.Position)
	c.gravity, c.upAxis = sample.Gravity, sample.Up

	c.action.Tick(dt)
	in := c.resolveIntent(step.Intent)

	for _, ct := range step.Contacts {
		c.evaluateContact(ct)
	}
	for _, ct := range c.pending {
		c.evaluateContact(ct)
	}
	c.pending = c.pending[:0]

	c.updateState(step.Position, step.Velocity, dt)
	c.dbg.Notify(true, "state: %v (ground=%d steep=%d climb=%d) normal=%v", c.state(), c.groundContactCount, c.steepContactCount, c.climbContactCount, c.contactNormal)

	if in.Action && c.grounded() && in.Move == (mgl32.Vec2{}) && c.velocity.Len() <= game.ActionMaxSpeed {
		if c.action.Begin() {
			c.dbg.Notify(true, "action: began for %vs", c.action.Duration())
			in = Intent{Right: in.Right, Forward: in.Forward}
		}
	}

	gait := GaitWalk
	switch {
	case in.Run:
		gait = GaitRun
	case in.AltGait:
		gait = GaitAlt
	}
	right, forward := c.inputAxes(in)
	c.adjustVelocity(in.Move, gait, right, forward, dt)

	var jumped bool
	if in.Jump {
		c.gate.ConsumeOnJump(c.grounded())
		jumped = c.jump(in.Run)
		c.dbg.Notify(true, "jump: requested, applied=%v phase=%d", jumped, c.jumpPhase)
	} else {
		c.applyGravity(dt)
	}

	res := Result{
		Velocity:           c.velocity,
		State:              c.state(),
		Gait:               gait,
		ContactNormal:      c.contactNormal,
		ConnectedBody:      c.connectedBody,
		ConnectionVelocity: c.connectionVelocity,
		Gravity:            c.gravity,
		Up:                 c.upAxis,
		Jumped:             jumped,
	}
	c.settled = settled{
		state:    res.State,
		climbing: c.climbing(),
		gait:     gait,
		move:     in.Move,
		speed:    c.velocity.Len(),
		action:   c.action.Active(),
	}
	c.clearState()
	return res
}

// resolveIntent clamps the intent and drops the requests the controller's current situation does
// not allow.
func (c *Controller) resolveIntent(in Intent) Intent {
	in.Move = game.ClampMagnitude2(in.Move, 1)
	if c.controlsDisabled || c.action.Active() {
		return Intent{Right: in.Right, Forward: in.Forward}
	}
	if in.AltGait {
		in.Run, in.Jump = false, false
	}
	if in.Run && !c.gate.HasResource() {
		in.Run = false
	}
	if in.Jump && c.cfg.JumpRequiresResource && !c.gate.HasResource() {
		in.Jump = false
	}
	return in
}

// inputAxes returns the input space axes projected on the plane perpendicular to the up axis.
func (c *Controller) inputAxes(in Intent) (right, forward mgl32.Vec3) {
	right, forward = in.Right, in.Forward
	if right.LenSqr() == 0 {
		right = game.WorldRight
	}
	if forward.LenSqr() == 0 {
		forward = game.WorldForward
	}
	return game.ProjectDirectionOnPlane(right, c.upAxis), game.ProjectDirectionOnPlane(forward, c.upAxis)
}

// Grounded reports whether the body was grounded at the end of the last step.
func (c *Controller) Grounded() bool {
	return c.settled.state == StateGrounded
}

// OnSteep reports whether the body only touched steep surfaces at the end of the last step.
func (c *Controller) OnSteep() bool {
	return c.settled.state == StateSteepOnly
}

// Climbing reports whether the body touched a climbable surface in the last step. Nothing moves
// the body along climb contacts yet.
func (c *Controller) Climbing() bool {
	return c.settled.climbing
}

// State ...
func (c *Controller) State() State {
	return c.settled.state
}

// Gait returns the gait used in the last step.
func (c *Controller) Gait() Gait {
	return c.settled.gait
}

// Running ...
func (c *Controller) Running() bool {
	return c.settled.gait == GaitRun
}

// AltGait ...
func (c *Controller) AltGait() bool {
	return c.settled.gait == GaitAlt
}

// PerformingAction reports whether the timed ground action is running.
func (c *Controller) PerformingAction() bool {
	return c.action.Active()
}

// JumpPhase returns the number of jumps performed since the body was last grounded.
func (c *Controller) JumpPhase() int {
	return c.jumpPhase
}

// StepsSinceLastGrounded ...
func (c *Controller) StepsSinceLastGrounded() int {
	return c.stepsSinceLastGrounded
}

// StepsSinceLastJump ...
func (c *Controller) StepsSinceLastJump() int {
	return c.stepsSinceLastJump
}

// Velocity returns the velocity computed by the last step.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.velocity
}

// Up returns the up axis sampled in the last step.
func (c *Controller) Up() mgl32.Vec3 {
	return c.upAxis
}

// Config returns a copy of the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetControlsDisabled enables or disables player control. While disabled, intent is ignored.
func (c *Controller) SetControlsDisabled(disabled bool) {
	c.controlsDisabled = disabled
}

// SetInWater ...
func (c *Controller) SetInWater(inWater bool) {
	c.inWater = inWater
}

// InWater ...
func (c *Controller) InWater() bool {
	return c.inWater
}
