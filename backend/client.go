// Package backend implements the session backend over grpc.
package backend

import (
	"context"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/log"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
)

// Client talks to a session backend over grpc. It implements
// session.Backend.
type Client struct {
	conn   *grpc.ClientConn
	client api.CoreAPIClient
}

// Dial connects to the backend listening on addr. opts are applied after
// the default options, which use an insecure transport and record client
// metrics.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithInsecure(),
		grpc.WithUnaryInterceptor(grpc_prometheus.UnaryClientInterceptor),
		grpc.WithStreamInterceptor(grpc_prometheus.StreamClientInterceptor),
	}
	dialOpts = append(dialOpts, opts...)

	log.G(ctx).WithField("addr", addr).Debug("dialing backend")
	conn, err := grpc.DialContext(ctx, addr, dialOpts...)
	if err != nil {
		return nil, ErrRemoteCall{Method: "Dial", Err: err}
	}
	return NewClient(conn), nil
}

// NewClient returns a Client using an existing connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{
		conn:   conn,
		client: api.NewCoreAPIClient(conn),
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func result(method string, resp *api.ResultResponse, err error) error {
	if err != nil {
		return ErrRemoteCall{Method: method, Err: err}
	}
	if !resp.Result {
		return ErrRemoteCall{Method: method, Err: errRejected}
	}
	return nil
}

func (c *Client) CreateSession(ctx context.Context) (int32, error) {
	resp, err := c.client.CreateSession(ctx, &api.CreateSessionRequest{})
	if err != nil {
		return 0, ErrRemoteCall{Method: api.MethodCreateSession, Err: err}
	}
	return resp.SessionID, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID int32) (*api.Session, error) {
	resp, err := c.client.GetSession(ctx, &api.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodGetSession, Err: err}
	}
	if resp.Session == nil {
		return nil, ErrRemoteCall{Method: api.MethodGetSession, Err: errNoSession}
	}
	return resp.Session, nil
}

func (c *Client) GetSessions(ctx context.Context) ([]*api.SessionSummary, error) {
	resp, err := c.client.GetSessions(ctx, &api.GetSessionsRequest{})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodGetSessions, Err: err}
	}
	return resp.Sessions, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID int32) error {
	resp, err := c.client.DeleteSession(ctx, &api.DeleteSessionRequest{SessionID: sessionID})
	return result(api.MethodDeleteSession, resp, err)
}

func (c *Client) SetSessionState(ctx context.Context, sessionID int32, state api.SessionState) error {
	resp, err := c.client.SetSessionState(ctx, &api.SetSessionStateRequest{
		SessionID: sessionID,
		State:     state,
	})
	return result(api.MethodSetSessionState, resp, err)
}

func (c *Client) GetHooks(ctx context.Context, sessionID int32) ([]*api.Hook, error) {
	resp, err := c.client.GetHooks(ctx, &api.GetHooksRequest{SessionID: sessionID})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodGetHooks, Err: err}
	}
	return resp.Hooks, nil
}

func (c *Client) AddNode(ctx context.Context, sessionID int32, node *api.Node) (int32, error) {
	resp, err := c.client.AddNode(ctx, &api.AddNodeRequest{
		SessionID: sessionID,
		Node:      node,
	})
	if err != nil {
		return 0, ErrRemoteCall{Method: api.MethodAddNode, Err: err}
	}
	return resp.NodeID, nil
}

func (c *Client) EditNode(ctx context.Context, sessionID, nodeID int32, position *api.Position) error {
	resp, err := c.client.EditNode(ctx, &api.EditNodeRequest{
		SessionID: sessionID,
		NodeID:    nodeID,
		Position:  position,
	})
	return result(api.MethodEditNode, resp, err)
}

func (c *Client) DeleteNode(ctx context.Context, sessionID, nodeID int32) error {
	resp, err := c.client.DeleteNode(ctx, &api.DeleteNodeRequest{
		SessionID: sessionID,
		NodeID:    nodeID,
	})
	return result(api.MethodDeleteNode, resp, err)
}

func (c *Client) AddLink(ctx context.Context, sessionID int32, link *api.Link) error {
	resp, err := c.client.AddLink(ctx, &api.AddLinkRequest{
		SessionID: sessionID,
		Link:      link,
	})
	if err != nil {
		return ErrRemoteCall{Method: api.MethodAddLink, Err: err}
	}
	if !resp.Result {
		return ErrRemoteCall{Method: api.MethodAddLink, Err: errRejected}
	}
	return nil
}

// DeleteLink deletes the link between the endpoints of link. Interface ids
// of endpoints without an interface are sent as 0.
func (c *Client) DeleteLink(ctx context.Context, sessionID int32, link *api.Link) error {
	req := &api.DeleteLinkRequest{
		SessionID: sessionID,
		NodeOneID: link.NodeOneID,
		NodeTwoID: link.NodeTwoID,
	}
	if link.InterfaceOne != nil {
		req.InterfaceOneID = link.InterfaceOne.ID
	}
	if link.InterfaceTwo != nil {
		req.InterfaceTwoID = link.InterfaceTwo.ID
	}
	resp, err := c.client.DeleteLink(ctx, req)
	return result(api.MethodDeleteLink, resp, err)
}

func (c *Client) StartSession(ctx context.Context, req *api.StartSessionRequest) error {
	resp, err := c.client.StartSession(ctx, req)
	if err != nil {
		return ErrRemoteCall{Method: api.MethodStartSession, Err: err}
	}
	if !resp.Result {
		return ErrRemoteCall{Method: api.MethodStartSession, Err: rejected(resp.Exceptions)}
	}
	return nil
}

func (c *Client) StopSession(ctx context.Context, sessionID int32) error {
	resp, err := c.client.StopSession(ctx, &api.StopSessionRequest{SessionID: sessionID})
	return result(api.MethodStopSession, resp, err)
}

func (c *Client) SaveXML(ctx context.Context, sessionID int32) ([]byte, error) {
	resp, err := c.client.SaveXML(ctx, &api.SaveXMLRequest{SessionID: sessionID})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodSaveXML, Err: err}
	}
	return resp.Data, nil
}

func (c *Client) OpenXML(ctx context.Context, data []byte, file string) (int32, error) {
	resp, err := c.client.OpenXML(ctx, &api.OpenXMLRequest{
		Data: data,
		File: file,
	})
	if err != nil {
		return 0, ErrRemoteCall{Method: api.MethodOpenXML, Err: err}
	}
	if !resp.Result {
		return 0, ErrRemoteCall{Method: api.MethodOpenXML, Err: errRejected}
	}
	return resp.SessionID, nil
}

func (c *Client) GetServices(ctx context.Context) ([]*api.Service, error) {
	resp, err := c.client.GetServices(ctx, &api.GetServicesRequest{})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodGetServices, Err: err}
	}
	return resp.Services, nil
}

func (c *Client) SetWlanConfig(ctx context.Context, sessionID, nodeID int32, config map[string]string) error {
	resp, err := c.client.SetWlanConfig(ctx, &api.SetWlanConfigRequest{
		SessionID: sessionID,
		NodeID:    nodeID,
		Config:    config,
	})
	return result(api.MethodSetWlanConfig, resp, err)
}

// Events opens the event stream of a session. The stream is closed when ctx
// is canceled.
func (c *Client) Events(ctx context.Context, sessionID int32) (api.EventStream, error) {
	stream, err := c.client.Events(ctx, &api.EventsRequest{SessionID: sessionID})
	if err != nil {
		return nil, ErrRemoteCall{Method: api.MethodEvents, Err: err}
	}
	return stream, nil
}
