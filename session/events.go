package session

import (
	"context"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/topology"
	"github.com/sirupsen/logrus"
)

// EventJoin is published on the store queue once a session has been joined
// and the store hydrated from its snapshot.
type EventJoin struct {
	SessionID int32
	State     api.SessionState
	Nodes     []*topology.Node
	Edges     []*topology.Edge
	Hooks     []*api.Hook
}

// EventSessionState is published on the store queue when the backend
// acknowledges a state change of the joined session.
type EventSessionState struct {
	SessionID int32
	State     api.SessionState
}

// listen forwards the events of stream into the loop until the stream fails
// or ctx is canceled.
func (s *Synchronizer) listen(ctx context.Context, stream api.EventStream) {
	log.G(ctx).Debug("(*Synchronizer).listen")
	for {
		ev, err := stream.Recv()
		if err != nil {
			if ctx.Err() == nil {
				log.G(ctx).WithError(err).Warn("event stream closed")
			}
			return
		}

		select {
		case s.remote <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleEvent applies an event of the joined session to the store. It runs
// on the loop.
func (s *Synchronizer) handleEvent(ctx context.Context, ev *api.Event) {
	if ev.SessionID != 0 && ev.SessionID != s.sessionID {
		// left over from a previous subscription
		return
	}
	logger := log.G(ctx).WithField("session.id", s.sessionID)

	switch {
	case ev.LinkEvent != nil && ev.LinkEvent.Link != nil:
		s.handleLinkEvent(logger, ev.LinkEvent)
	case ev.NodeEvent != nil && ev.NodeEvent.Node != nil:
		s.handleNodeEvent(logger, ev.NodeEvent)
	case ev.SessionEvent != nil:
		state := api.SessionState(ev.SessionEvent.Event)
		if !state.Valid() || state == api.SessionStateNone {
			logger.WithField("event", ev.SessionEvent.Event).Debug("ignoring session event")
			return
		}
		s.setState(state)
	}
}

func (s *Synchronizer) handleLinkEvent(logger *logrus.Entry, ev *api.LinkEvent) {
	link := ev.Link
	logger = logger.WithFields(logrus.Fields{
		"node_one": link.NodeOneID,
		"node_two": link.NodeTwoID,
	})

	switch ev.MessageType {
	case api.MessageTypeAdd:
		if _, err := s.store.AddPreexistingEdge(link); err != nil {
			if topology.IsErrDuplicateEdge(err) {
				return
			}
			logger.WithError(err).Warn("failed to add link from event")
		}
	case api.MessageTypeDelete:
		a, ok1 := s.store.LocalID(link.NodeOneID)
		b, ok2 := s.store.LocalID(link.NodeTwoID)
		if !ok1 || !ok2 || a == b {
			logger.Debug("ignoring delete of unknown link")
			return
		}
		if _, err := s.store.DeleteEdge(topology.NewToken(a, b)); err != nil && !topology.IsErrUnknownEdge(err) {
			logger.WithError(err).Warn("failed to delete link from event")
		}
	default:
		logger.WithField("message_type", ev.MessageType).Debug("ignoring link event")
	}
}

func (s *Synchronizer) handleNodeEvent(logger *logrus.Entry, ev *api.NodeEvent) {
	node := ev.Node
	localID, ok := s.store.LocalID(node.ID)
	if !ok {
		logger.WithField("node_id", node.ID).Debug("ignoring event of unknown node")
		return
	}

	switch ev.MessageType {
	case api.MessageTypeDelete:
		if err := s.store.DeleteNode(localID); err != nil {
			logger.WithError(err).Warn("failed to delete node from event")
		}
		delete(s.wlanConfigs, node.ID)
		delete(s.mobilityConfigs, node.ID)
	default:
		if node.Position == nil {
			return
		}
		if err := s.store.UpdatePosition(localID, float64(node.Position.X), float64(node.Position.Y)); err != nil {
			logger.WithError(err).Warn("failed to move node from event")
		}
	}
}
