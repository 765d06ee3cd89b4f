package meta

// ---------------------------------------------------------------------------
// GuestError: thrown managed exceptions
// ---------------------------------------------------------------------------

// GuestError carries a thrown managed exception through Go control
// flow. It satisfies error so runtime internals can return or propagate
// it while keeping the guest exception object reachable.
type GuestError struct {
	exception *Object
}

// Throw wraps a guest exception object for propagation.
func Throw(exception *Object) *GuestError {
	return &GuestError{exception: exception}
}

// Exception returns the guest exception object.
func (e *GuestError) Exception() *Object {
	return e.exception
}

func (e *GuestError) Error() string {
	if e == nil || e.exception.IsNull() {
		return "guest exception: null"
	}
	return "guest exception: " + e.exception.Class().Name
}
