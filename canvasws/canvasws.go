// Package canvasws streams the topology of a store to canvas clients over a
// websocket. A client first receives a snapshot of the store, then one JSON
// message per change.
package canvasws

import (
	"context"
	"net/http"

	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/session"
	"github.com/coreemu/coretk/topology"
	events "github.com/docker/go-events"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Message types.
const (
	TypeSnapshot   = "snapshot"
	TypeJoin       = "join"
	TypeState      = "state"
	TypeReset      = "reset"
	TypeAddNode    = "add_node"
	TypeDeleteNode = "delete_node"
	TypeMoveNode   = "move_node"
	TypeAddEdge    = "add_edge"
	TypeDeleteEdge = "delete_edge"
)

// Message is a frame sent to canvas clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Snapshot is the data of snapshot and join messages.
type Snapshot struct {
	SessionID int32            `json:"session_id"`
	State     string           `json:"state,omitempty"`
	Nodes     []*topology.Node `json:"nodes"`
	Edges     []*topology.Edge `json:"edges"`
}

// Handler upgrades requests to websockets and streams the store on them.
// Streams end when the context given to NewHandler is canceled.
type Handler struct {
	ctx      context.Context
	store    *topology.Store
	upgrader websocket.Upgrader
	logger   *logrus.Entry
}

// NewHandler returns a Handler streaming store. Requests from any origin
// are accepted.
func NewHandler(ctx context.Context, store *topology.Store) *Handler {
	return &Handler{
		ctx:   ctx,
		store: store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.G(log.WithModule(ctx, "canvasws")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	ws := newConn(c)
	defer ws.Close()

	logger := h.logger.WithField("remote", r.RemoteAddr)
	logger.Debug("canvas client connected")
	defer logger.Debug("canvas client disconnected")

	// watch before taking the snapshot so no change is lost
	eventq, cancel := h.store.Queue().Watch()
	defer cancel()

	nodes, edges := h.store.Snapshot()
	if err := ws.WriteJSON(Message{
		Type: TypeSnapshot,
		Data: Snapshot{SessionID: h.store.SessionID(), Nodes: nodes, Edges: edges},
	}); err != nil {
		logger.WithError(err).Warn("failed to send snapshot")
		return
	}

	// Anything the client sends is discarded. A read error means the client
	// is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-eventq:
			msg, ok := Encode(ev)
			if !ok {
				continue
			}
			if err := ws.WriteJSON(msg); err != nil {
				logger.WithError(err).Warn("failed to send event")
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-h.ctx.Done():
			return
		}
	}
}

// Encode maps an event published on the store queue to a message. It
// returns false for events canvas clients don't care about.
func Encode(ev events.Event) (Message, bool) {
	switch v := ev.(type) {
	case topology.EventAddNode:
		return Message{Type: TypeAddNode, Data: v.Node}, true
	case topology.EventDeleteNode:
		return Message{Type: TypeDeleteNode, Data: v.Node}, true
	case topology.EventMoveNode:
		return Message{Type: TypeMoveNode, Data: v.Node}, true
	case topology.EventAddEdge:
		return Message{Type: TypeAddEdge, Data: v.Edge}, true
	case topology.EventDeleteEdge:
		return Message{Type: TypeDeleteEdge, Data: v.Edge}, true
	case topology.EventReset:
		return Message{Type: TypeReset, Data: Snapshot{SessionID: v.SessionID}}, true
	case session.EventJoin:
		return Message{Type: TypeJoin, Data: Snapshot{
			SessionID: v.SessionID,
			State:     v.State.String(),
			Nodes:     v.Nodes,
			Edges:     v.Edges,
		}}, true
	case session.EventSessionState:
		return Message{Type: TypeState, Data: Snapshot{SessionID: v.SessionID, State: v.State.String()}}, true
	}
	return Message{}, false
}
