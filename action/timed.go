// Package action implements timed actions that lock a body in place for a fixed duration, such
// as digging or interacting with the ground.
package action

// Timed is an action that, once begun, stays active until its duration has elapsed. It is not
// safe for concurrent use; it is owned by the controller that ticks it.
type Timed struct {
	duration  float32
	remaining float32
	active    bool

	hook   func()
	finish func()
}

// NewTimed returns a Timed action lasting duration seconds. hook, if non-nil, is called every time
// the action begins.
func NewTimed(duration float32, hook func()) *Timed {
	return &Timed{duration: duration, hook: hook}
}

// OnFinish sets a function called when the action ends on its own after its duration.
func (t *Timed) OnFinish(f func()) {
	t.finish = f
}

// Begin starts the action if it is not already running. It returns false if the action was
// already active.
func (t *Timed) Begin() bool {
	if t.active {
		return false
	}
	t.active = true
	t.remaining = t.duration
	if t.hook != nil {
		t.hook()
	}
	return true
}

// Tick advances the action timer by dt seconds. The action ends once the timer drops below zero.
func (t *Timed) Tick(dt float32) {
	if !t.active {
		return
	}
	t.remaining -= dt
	if t.remaining < 0 {
		t.active = false
		t.remaining = 0
		if t.finish != nil {
			t.finish()
		}
	}
}

// Active reports whether the action is running.
func (t *Timed) Active() bool {
	return t.active
}

// Remaining returns the seconds left before the action ends.
func (t *Timed) Remaining() float32 {
	return t.remaining
}

// Duration ...
func (t *Timed) Duration() float32 {
	return t.duration
}
