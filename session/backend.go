package session

import (
	"context"

	"github.com/coreemu/coretk/api"
)

// Backend is the remote session service the Synchronizer keeps its store
// consistent with. Calls are synchronous and are never retried.
type Backend interface {
	CreateSession(ctx context.Context) (int32, error)
	GetSession(ctx context.Context, sessionID int32) (*api.Session, error)
	GetSessions(ctx context.Context) ([]*api.SessionSummary, error)
	DeleteSession(ctx context.Context, sessionID int32) error
	SetSessionState(ctx context.Context, sessionID int32, state api.SessionState) error
	GetHooks(ctx context.Context, sessionID int32) ([]*api.Hook, error)

	// AddNode creates node in the session and returns the id the backend
	// assigned to it.
	AddNode(ctx context.Context, sessionID int32, node *api.Node) (int32, error)
	EditNode(ctx context.Context, sessionID, nodeID int32, position *api.Position) error
	DeleteNode(ctx context.Context, sessionID, nodeID int32) error
	AddLink(ctx context.Context, sessionID int32, link *api.Link) error
	DeleteLink(ctx context.Context, sessionID int32, link *api.Link) error

	StartSession(ctx context.Context, req *api.StartSessionRequest) error
	StopSession(ctx context.Context, sessionID int32) error

	SaveXML(ctx context.Context, sessionID int32) ([]byte, error)
	// OpenXML loads a session from data and returns the new session id.
	OpenXML(ctx context.Context, data []byte, file string) (int32, error)

	GetServices(ctx context.Context) ([]*api.Service, error)
	SetWlanConfig(ctx context.Context, sessionID, nodeID int32, config map[string]string) error

	// Events subscribes to the events of a session. The stream ends when
	// ctx is canceled.
	Events(ctx context.Context, sessionID int32) (api.EventStream, error)
}
