// Package stamina implements a drainable resource pool that gates running and jumping.
package stamina

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/locomotion/oerror"
)

// Config ...
type Config struct {
	Max float32 `toml:"max" yaml:"max"`
	// RunDrain is spent per second while running.
	RunDrain float32 `toml:"run_drain" yaml:"run_drain"`
	// Regen is recovered per second while not running.
	Regen float32 `toml:"regen" yaml:"regen"`

	GroundJumpCost float32 `toml:"ground_jump_cost" yaml:"ground_jump_cost"`
	AirJumpCost    float32 `toml:"air_jump_cost" yaml:"air_jump_cost"`
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		Max:            100,
		RunDrain:       20,
		Regen:          10,
		GroundJumpCost: 10,
		AirJumpCost:    20,
	}
}

// Validate ...
func (c Config) Validate() error {
	if c.Max <= 0 {
		return oerror.New("stamina max must be positive, got %v", c.Max)
	}
	if c.RunDrain < 0 || c.Regen < 0 || c.GroundJumpCost < 0 || c.AirJumpCost < 0 {
		return oerror.New("stamina rates and costs must be non-negative")
	}
	return nil
}

// Pool is a stamina pool. It starts full.
type Pool struct {
	cfg     Config
	current float32
}

// NewPool ...
func NewPool(cfg Config) *Pool {
	return &Pool{cfg: cfg, current: cfg.Max}
}

// HasResource reports whether there is any stamina left.
func (p *Pool) HasResource() bool {
	return p.current > 0
}

// ConsumeOnJump spends the jump cost for a grounded or an air jump.
func (p *Pool) ConsumeOnJump(wasGrounded bool) {
	cost := p.cfg.AirJumpCost
	if wasGrounded {
		cost = p.cfg.GroundJumpCost
	}
	p.set(p.current - cost)
}

// Tick drains the pool while running and regenerates it otherwise.
func (p *Pool) Tick(dt float32, running bool) {
	if running {
		p.set(p.current - p.cfg.RunDrain*dt)
		return
	}
	p.set(p.current + p.cfg.Regen*dt)
}

// Current ...
func (p *Pool) Current() float32 {
	return p.current
}

// Fraction returns the current stamina as a fraction of the maximum.
func (p *Pool) Fraction() float32 {
	return p.current / p.cfg.Max
}

func (p *Pool) set(v float32) {
	p.current = math32.Max(0, math32.Min(v, p.cfg.Max))
}
