package topology

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSameEndpoint is returned when an edge would connect a node to itself.
var ErrSameEndpoint = errors.New("topology: edge endpoints must be distinct")

// ErrUnknownKind is returned for a node kind that is neither link layer nor
// network layer.
type ErrUnknownKind struct {
	Kind string
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown node kind %q", e.Kind)
}

// IsErrUnknownKind returns true if the cause of e is ErrUnknownKind.
func IsErrUnknownKind(e error) bool {
	_, ok := errors.Cause(e).(ErrUnknownKind)
	return ok
}

// ErrDuplicateEdge is returned when an edge already connects the two
// endpoints.
type ErrDuplicateEdge struct {
	Token Token
}

func (e ErrDuplicateEdge) Error() string {
	return fmt.Sprintf("edge %v already exists", e.Token)
}

// IsErrDuplicateEdge returns true if the cause of e is ErrDuplicateEdge.
func IsErrDuplicateEdge(e error) bool {
	_, ok := errors.Cause(e).(ErrDuplicateEdge)
	return ok
}

// ErrUnknownNode is returned when an operation references a node that is not
// in the store. Remote is set when ID is a backend node id rather than a
// local id.
type ErrUnknownNode struct {
	ID     int
	Remote bool
}

func (e ErrUnknownNode) Error() string {
	if e.Remote {
		return fmt.Sprintf("unknown node id %d", e.ID)
	}
	return fmt.Sprintf("unknown local node %d", e.ID)
}

// IsErrUnknownNode returns true if the cause of e is ErrUnknownNode.
func IsErrUnknownNode(e error) bool {
	_, ok := errors.Cause(e).(ErrUnknownNode)
	return ok
}

// ErrUnknownEdge is returned when an operation references an edge that is
// not in the store.
type ErrUnknownEdge struct {
	Token Token
}

func (e ErrUnknownEdge) Error() string {
	return fmt.Sprintf("unknown edge %v", e.Token)
}

// IsErrUnknownEdge returns true if the cause of e is ErrUnknownEdge.
func IsErrUnknownEdge(e error) bool {
	_, ok := errors.Cause(e).(ErrUnknownEdge)
	return ok
}

// ErrNodeExists is returned when a node with the same backend id is already
// in the store.
type ErrNodeExists struct {
	NodeID int32
}

func (e ErrNodeExists) Error() string {
	return fmt.Sprintf("node id %d already exists", e.NodeID)
}

// IsErrNodeExists returns true if the cause of e is ErrNodeExists.
func IsErrNodeExists(e error) bool {
	_, ok := errors.Cause(e).(ErrNodeExists)
	return ok
}
