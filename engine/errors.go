package engine

import "fmt"

// InvalidActionError reports an action that is not legal for the acting
// seat in the current state. The state is left untouched.
type InvalidActionError struct {
	Action ActionKind
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q: %s", e.Action, e.Reason)
}

// ProtocolViolationError reports a structurally impossible request, such
// as acting on a hand that has already ended.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return "protocol violation: " + e.Reason
}
