package assert

import "github.com/oomph-ac/locomotion/oerror"

// IsTrue panics with a LocomotionError when ok is false. Only a programming error in the host
// should trip it.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
