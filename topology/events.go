package topology

// Events published on the store queue after a change is committed. Every
// event carries copies, so watchers may keep them.

// EventAddNode is published when a node is added.
type EventAddNode struct {
	Node *Node
}

// EventDeleteNode is published when a node is removed. The edges removed
// along with it are published first, as EventDeleteEdge.
type EventDeleteNode struct {
	Node *Node
}

// EventMoveNode is published when a node position changes.
type EventMoveNode struct {
	Node *Node
}

// EventAddEdge is published when an edge is added, with the interfaces
// created for it.
type EventAddEdge struct {
	Edge *Edge
}

// EventDeleteEdge is published when an edge is removed.
type EventDeleteEdge struct {
	Edge *Edge
}

// EventReset is published when the store is cleared.
type EventReset struct {
	SessionID int32
}
