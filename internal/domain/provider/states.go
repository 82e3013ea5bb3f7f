package provider

import "fmt"

// State is the lifecycle state of a cryptographic context.
type State int

// Context lifecycle states. A context is created in StateNeedInit, moves to
// StateReady once keyed, and ends in StateClosed after Finalize or Close.
// StateClosed is terminal.
const (
	StateNeedInit State = iota
	StateReady
	StateClosed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNeedInit:
		return "need-init"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CheckState returns ErrWrongState when current is not among expected.
// Context implementations use it to guard every stateful operation.
func CheckState(current State, expected ...State) error {
	for _, s := range expected {
		if current == s {
			return nil
		}
	}
	return fmt.Errorf("%w: context is %s", ErrWrongState, current)
}
