package locomotion

import "github.com/sirupsen/logrus"

// debugger traces the phases of a step when the controller's logger has debug logging enabled.
type debugger struct {
	log *logrus.Logger
}

// Notify logs the message if cond is true and debug logging is enabled.
func (d debugger) Notify(cond bool, format string, args ...any) {
	if !cond || d.log == nil || !d.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	d.log.Debugf(format, args...)
}
