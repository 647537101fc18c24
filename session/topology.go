package session

import (
	"context"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/topology"
	"github.com/pkg/errors"
)

// AddNode places a node of the given kind. In RUNTIME the node is created
// in the remote session as well, and removed again locally if that fails.
// WLAN nodes start with the configured WLAN defaults.
func (s *Synchronizer) AddNode(ctx context.Context, kind, model string, pos topology.Position, name string) (*topology.Node, error) {
	var node *topology.Node
	err := s.do(ctx, func(ctx context.Context) error {
		n, err := s.store.AddNode(kind, model, pos, name)
		if err != nil {
			return err
		}
		wlan := n.Kind.Medium() == topology.MediumWLAN
		if wlan {
			s.wlanConfigs[n.NodeID] = copyConfig(s.config.Wlan)
		}

		if s.runtime() {
			if err := s.pushNode(ctx, n, wlan); err != nil {
				s.rollback(ctx, "add_node", s.store.DeleteNode(n.LocalID))
				delete(s.wlanConfigs, n.NodeID)
				return err
			}
		}
		node = n
		return nil
	})
	return node, err
}

func (s *Synchronizer) pushNode(ctx context.Context, n *topology.Node, wlan bool) error {
	nodeID, err := s.backend.AddNode(ctx, s.sessionID, n.APINode())
	if err != nil {
		return err
	}
	if nodeID != n.NodeID {
		s.rollback(ctx, "add_node", s.backend.DeleteNode(ctx, s.sessionID, nodeID))
		return ErrNodeIDMismatch{NodeID: n.NodeID, Assigned: nodeID}
	}
	if wlan {
		return s.backend.SetWlanConfig(ctx, s.sessionID, n.NodeID, s.wlanConfigs[n.NodeID])
	}
	return nil
}

func (s *Synchronizer) rollback(ctx context.Context, op string, err error) {
	if err != nil {
		log.G(ctx).WithError(err).WithField("operation", op).Error("failed to roll back local change")
	}
}

// AddEdge connects two nodes by local id. In RUNTIME the link is created in
// the remote session as well, and removed again locally if that fails.
func (s *Synchronizer) AddEdge(ctx context.Context, local1, local2 int) (*topology.Edge, error) {
	var edge *topology.Edge
	err := s.do(ctx, func(ctx context.Context) error {
		e, err := s.store.AddEdge(local1, local2)
		if err != nil {
			return err
		}
		if s.runtime() {
			if err := s.backend.AddLink(ctx, s.sessionID, e.APILink()); err != nil {
				_, rerr := s.store.DeleteEdge(e.Token)
				s.rollback(ctx, "add_edge", rerr)
				return err
			}
		}
		edge = e
		return nil
	})
	return edge, err
}

// DeleteNodes removes the nodes with the given local ids along with their
// edges. In RUNTIME each node is deleted remotely first and kept locally if
// that fails.
func (s *Synchronizer) DeleteNodes(ctx context.Context, localIDs ...int) error {
	return s.do(ctx, func(ctx context.Context) error {
		for _, localID := range localIDs {
			n := s.store.Node(localID)
			if n == nil {
				return topology.ErrUnknownNode{ID: localID}
			}
			if s.runtime() {
				if err := s.backend.DeleteNode(ctx, s.sessionID, n.NodeID); err != nil {
					return err
				}
			}
			if err := s.store.DeleteNode(localID); err != nil {
				return err
			}
			delete(s.wlanConfigs, n.NodeID)
			delete(s.mobilityConfigs, n.NodeID)
		}
		return nil
	})
}

// DeleteEdge removes the edge identified by token. In RUNTIME the link is
// deleted remotely first and kept locally if that fails.
func (s *Synchronizer) DeleteEdge(ctx context.Context, token topology.Token) error {
	return s.do(ctx, func(ctx context.Context) error {
		e := s.store.Edge(token)
		if e == nil {
			return topology.ErrUnknownEdge{Token: token}
		}
		if s.runtime() {
			if err := s.backend.DeleteLink(ctx, s.sessionID, e.APILink()); err != nil {
				return err
			}
		}
		_, err := s.store.DeleteEdge(token)
		return err
	})
}

// MoveNode moves a node while it is being dragged. In RUNTIME the position
// is pushed to the backend at most at the configured rate; positions above
// the rate only change the store. Use CommitPosition once the drag ends.
func (s *Synchronizer) MoveNode(ctx context.Context, localID int, x, y float64) error {
	return s.do(ctx, func(ctx context.Context) error {
		return s.move(ctx, localID, x, y, false)
	})
}

// CommitPosition moves a node and, in RUNTIME, always pushes the position.
func (s *Synchronizer) CommitPosition(ctx context.Context, localID int, x, y float64) error {
	return s.do(ctx, func(ctx context.Context) error {
		return s.move(ctx, localID, x, y, true)
	})
}

func (s *Synchronizer) move(ctx context.Context, localID int, x, y float64, force bool) error {
	old := s.store.Node(localID)
	if old == nil {
		return topology.ErrUnknownNode{ID: localID}
	}
	if err := s.store.UpdatePosition(localID, x, y); err != nil {
		return err
	}
	if !s.runtime() || (!force && !s.limiter.Allow()) {
		return nil
	}
	pos := &api.Position{X: float32(x), Y: float32(y)}
	if err := s.backend.EditNode(ctx, s.sessionID, old.NodeID, pos); err != nil {
		s.rollback(ctx, "move_node", s.store.UpdatePosition(localID, old.Position.X, old.Position.Y))
		return err
	}
	return nil
}

// WlanConfig returns the configuration of the WLAN node with the given local
// id.
func (s *Synchronizer) WlanConfig(ctx context.Context, localID int) (map[string]string, error) {
	var config map[string]string
	err := s.do(ctx, func(ctx context.Context) error {
		n, err := s.wlanNode(localID)
		if err != nil {
			return err
		}
		config = copyConfig(s.wlanConfigs[n.NodeID])
		return nil
	})
	return config, err
}

// SetWlanConfig replaces the configuration of a WLAN node. In RUNTIME it is
// pushed to the backend and the previous configuration is kept if that
// fails.
func (s *Synchronizer) SetWlanConfig(ctx context.Context, localID int, config map[string]string) error {
	config = copyConfig(config)
	return s.do(ctx, func(ctx context.Context) error {
		n, err := s.wlanNode(localID)
		if err != nil {
			return err
		}
		if s.runtime() {
			if err := s.backend.SetWlanConfig(ctx, s.sessionID, n.NodeID, config); err != nil {
				return err
			}
		}
		s.wlanConfigs[n.NodeID] = config
		return nil
	})
}

// SetMobilityConfig replaces the mobility configuration of a WLAN node. It
// is sent to the backend when the session is started.
func (s *Synchronizer) SetMobilityConfig(ctx context.Context, localID int, config map[string]string) error {
	config = copyConfig(config)
	return s.do(ctx, func(ctx context.Context) error {
		n, err := s.wlanNode(localID)
		if err != nil {
			return err
		}
		s.mobilityConfigs[n.NodeID] = config
		return nil
	})
}

func (s *Synchronizer) wlanNode(localID int) (*topology.Node, error) {
	n := s.store.Node(localID)
	if n == nil {
		return nil, topology.ErrUnknownNode{ID: localID}
	}
	if n.Kind.Medium() != topology.MediumWLAN {
		return nil, errors.Wrapf(errNotWLAN, "node %d", localID)
	}
	return n, nil
}
