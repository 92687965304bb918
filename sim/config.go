package sim

import "github.com/oomph-ac/locomotion/oerror"

// Config ...
type Config struct {
	// TickRate is the number of fixed steps per second.
	TickRate int `toml:"tick_rate" yaml:"tick_rate"`
	// Parallel steps agents on the worker pool instead of one after another.
	Parallel bool `toml:"parallel" yaml:"parallel"`
	// HistorySize is the number of step records kept per agent.
	HistorySize int `toml:"history_size" yaml:"history_size"`
	// StepHeight is the tallest ledge a grounded agent walks up without jumping.
	StepHeight float32 `toml:"step_height" yaml:"step_height"`
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		TickRate:    50,
		HistorySize: 64,
		StepHeight:  0.3,
	}
}

// Validate ...
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return oerror.New("tick rate must be positive, got %d", c.TickRate)
	case c.HistorySize < 0:
		return oerror.New("history size must be non-negative, got %d", c.HistorySize)
	case c.StepHeight < 0:
		return oerror.New("step height must be non-negative, got %v", c.StepHeight)
	}
	return nil
}

// StepDuration returns the duration of a single tick in seconds.
func (c Config) StepDuration() float32 {
	return 1 / float32(c.TickRate)
}
