package api

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SessionState is the lifecycle state of a remote session.
type SessionState int32

const (
	SessionStateNone          SessionState = 0
	SessionStateDefinition    SessionState = 1
	SessionStateConfiguration SessionState = 2
	SessionStateInstantiation SessionState = 3
	SessionStateRuntime       SessionState = 4
	SessionStateDatacollect   SessionState = 5
	SessionStateShutdown      SessionState = 6
)

var sessionStateNames = map[SessionState]string{
	SessionStateNone:          "none",
	SessionStateDefinition:    "definition",
	SessionStateConfiguration: "configuration",
	SessionStateInstantiation: "instantiation",
	SessionStateRuntime:       "runtime",
	SessionStateDatacollect:   "datacollect",
	SessionStateShutdown:      "shutdown",
}

func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SessionState(%d)", int32(s))
}

// Valid reports whether s is one of the known session states.
func (s SessionState) Valid() bool {
	_, ok := sessionStateNames[s]
	return ok
}

// ErrInvalidState is returned when a session state is requested by a name
// that does not match any known state.
type ErrInvalidState struct {
	Name string
}

func (e ErrInvalidState) Error() string {
	return fmt.Sprintf("invalid session state %q", e.Name)
}

// IsErrInvalidState returns true if the cause of e is ErrInvalidState.
func IsErrInvalidState(e error) bool {
	_, ok := errors.Cause(e).(ErrInvalidState)
	return ok
}

// ParseSessionState maps a state name, as accepted by the backend's "set
// state" operation, to a SessionState. Matching is case insensitive. Unknown
// names are rejected.
func ParseSessionState(name string) (SessionState, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for state, stateName := range sessionStateNames {
		if stateName == lower {
			return state, nil
		}
	}
	return SessionStateNone, ErrInvalidState{Name: name}
}
