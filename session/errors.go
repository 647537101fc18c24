package session

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoSession is returned by operations that need a joined session.
	ErrNoSession = errors.New("session: no session joined")

	// ErrClosed is returned when the synchronizer loop is not running.
	ErrClosed = errors.New("session: synchronizer closed")

	errNotWLAN = errors.New("session: node is not a wlan")
)

// ErrNodeIDMismatch is returned when the backend creates a node under an id
// other than the one allocated locally.
type ErrNodeIDMismatch struct {
	NodeID   int32
	Assigned int32
}

func (e ErrNodeIDMismatch) Error() string {
	return fmt.Sprintf("session: node %d was created as node %d", e.NodeID, e.Assigned)
}

// IsErrNodeIDMismatch returns true if the cause of e is ErrNodeIDMismatch.
func IsErrNodeIDMismatch(e error) bool {
	_, ok := errors.Cause(e).(ErrNodeIDMismatch)
	return ok
}
