// Package testutils provides an in-memory session backend for tests.
package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/watch"
	events "github.com/docker/go-events"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FakeCore is an in-memory implementation of the CoreApi service. It keeps
// just enough session state for the client to be exercised end to end, and
// records every call it serves.
type FakeCore struct {
	mu          sync.Mutex
	nextSession int32
	sessions    map[int32]*fakeSession
	saved       map[string]*api.Session
	services    []*api.Service
	calls       []string
	failures    map[string]error
	rejects     map[string]bool
	exceptions  []string
	subscribers map[int32]int
	nodeOffset  int32

	queue *watch.Queue
}

type fakeSession struct {
	session *api.Session
	hooks   []*api.Hook
	wlan    map[int32]map[string]string
	started *api.StartSessionRequest
}

var _ api.CoreAPIServer = &FakeCore{}

// NewFakeCore returns an empty FakeCore offering services.
func NewFakeCore(services ...*api.Service) *FakeCore {
	return &FakeCore{
		nextSession: 1,
		sessions:    make(map[int32]*fakeSession),
		saved:       make(map[string]*api.Session),
		services:    services,
		failures:    make(map[string]error),
		rejects:     make(map[string]bool),
		subscribers: make(map[int32]int),
		queue:       watch.NewQueue(),
	}
}

// AddSession seeds a session and returns its id. The id of s is used when
// set.
func (f *FakeCore) AddSession(s *api.Session, hooks ...*api.Hook) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := copySession(s)
	if c.ID == 0 {
		c.ID = f.nextSession
	}
	if c.ID >= f.nextSession {
		f.nextSession = c.ID + 1
	}
	if c.State == api.SessionStateNone {
		c.State = api.SessionStateDefinition
	}
	f.sessions[c.ID] = &fakeSession{
		session: c,
		hooks:   hooks,
		wlan:    make(map[int32]map[string]string),
	}
	return c.ID
}

// Session returns a copy of the session with the given id, or nil.
func (f *FakeCore) Session(id int32) *api.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil
	}
	return copySession(s.session)
}

// Started returns the last start request received for session id.
func (f *FakeCore) Started(id int32) *api.StartSessionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s.started
	}
	return nil
}

// WlanConfig returns the wlan configuration set for a node.
func (f *FakeCore) WlanConfig(id, nodeID int32) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s.wlan[nodeID]
	}
	return nil
}

// Calls returns the methods served so far, in order.
func (f *FakeCore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// ResetCalls forgets the recorded calls.
func (f *FakeCore) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Fail makes every call of method fail with err. A nil err clears the
// failure.
func (f *FakeCore) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

// Reject makes every call of method answer with a failed result, along
// with exceptions for StartSession.
func (f *FakeCore) Reject(method string, exceptions ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejects[method] = true
	if method == api.MethodStartSession {
		f.exceptions = exceptions
	}
}

// RenumberNodes makes AddNode store new nodes under the requested id plus
// offset, the way a backend picking its own ids would.
func (f *FakeCore) RenumberNodes(offset int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodeOffset = offset
}

// Subscribers returns the number of open event streams of session id.
func (f *FakeCore) Subscribers(id int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribers[id]
}

// Publish sends ev to the event streams of ev.SessionID.
func (f *FakeCore) Publish(ev *api.Event) {
	f.queue.Publish(ev)
}

// Close ends every event stream.
func (f *FakeCore) Close() error {
	return f.queue.Close()
}

// call records method and returns the failure configured for it, if any.
// f.mu must be held.
func (f *FakeCore) call(method string) error {
	f.calls = append(f.calls, method)
	return f.failures[method]
}

func (f *FakeCore) get(id int32) (*fakeSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "session %d not found", id)
	}
	return s, nil
}

func (f *FakeCore) CreateSession(ctx context.Context, req *api.CreateSessionRequest) (*api.CreateSessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodCreateSession); err != nil {
		return nil, err
	}
	id := f.nextSession
	f.nextSession++
	f.sessions[id] = &fakeSession{
		session: &api.Session{ID: id, State: api.SessionStateDefinition},
		wlan:    make(map[int32]map[string]string),
	}
	return &api.CreateSessionResponse{SessionID: id, State: api.SessionStateDefinition}, nil
}

func (f *FakeCore) GetSession(ctx context.Context, req *api.GetSessionRequest) (*api.GetSessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodGetSession); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	return &api.GetSessionResponse{Session: copySession(s.session)}, nil
}

func (f *FakeCore) GetSessions(ctx context.Context, req *api.GetSessionsRequest) (*api.GetSessionsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodGetSessions); err != nil {
		return nil, err
	}
	resp := &api.GetSessionsResponse{}
	for _, s := range f.sessions {
		resp.Sessions = append(resp.Sessions, &api.SessionSummary{
			ID:    s.session.ID,
			State: s.session.State,
			Nodes: int32(len(s.session.Nodes)),
		})
	}
	sort.Slice(resp.Sessions, func(i, j int) bool {
		return resp.Sessions[i].ID < resp.Sessions[j].ID
	})
	return resp, nil
}

func (f *FakeCore) DeleteSession(ctx context.Context, req *api.DeleteSessionRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodDeleteSession); err != nil {
		return nil, err
	}
	_, ok := f.sessions[req.SessionID]
	delete(f.sessions, req.SessionID)
	return f.result(api.MethodDeleteSession, ok), nil
}

func (f *FakeCore) result(method string, ok bool) *api.ResultResponse {
	return &api.ResultResponse{Result: ok && !f.rejects[method]}
}

func (f *FakeCore) SetSessionState(ctx context.Context, req *api.SetSessionStateRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodSetSessionState); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	resp := f.result(api.MethodSetSessionState, true)
	if resp.Result {
		s.session.State = req.State
	}
	return resp, nil
}

func (f *FakeCore) GetHooks(ctx context.Context, req *api.GetHooksRequest) (*api.GetHooksResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodGetHooks); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	return &api.GetHooksResponse{Hooks: s.hooks}, nil
}

func (f *FakeCore) AddNode(ctx context.Context, req *api.AddNodeRequest) (*api.AddNodeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodAddNode); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Node == nil {
		return nil, status.Error(codes.InvalidArgument, "missing node")
	}
	n := req.Node.Copy()
	n.ID += f.nodeOffset
	for _, existing := range s.session.Nodes {
		if existing.ID == n.ID {
			return nil, status.Errorf(codes.AlreadyExists, "node %d exists", n.ID)
		}
	}
	s.session.Nodes = append(s.session.Nodes, n)
	return &api.AddNodeResponse{NodeID: n.ID}, nil
}

func (f *FakeCore) EditNode(ctx context.Context, req *api.EditNodeRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodEditNode); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	for _, n := range s.session.Nodes {
		if n.ID == req.NodeID && req.Position != nil {
			p := *req.Position
			n.Position = &p
			return f.result(api.MethodEditNode, true), nil
		}
	}
	return f.result(api.MethodEditNode, false), nil
}

func (f *FakeCore) DeleteNode(ctx context.Context, req *api.DeleteNodeRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodDeleteNode); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	found := false
	nodes := s.session.Nodes[:0]
	for _, n := range s.session.Nodes {
		if n.ID == req.NodeID {
			found = true
			continue
		}
		nodes = append(nodes, n)
	}
	s.session.Nodes = nodes
	links := s.session.Links[:0]
	for _, l := range s.session.Links {
		if l.NodeOneID != req.NodeID && l.NodeTwoID != req.NodeID {
			links = append(links, l)
		}
	}
	s.session.Links = links
	return f.result(api.MethodDeleteNode, found), nil
}

func (f *FakeCore) AddLink(ctx context.Context, req *api.AddLinkRequest) (*api.AddLinkResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodAddLink); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Link == nil {
		return nil, status.Error(codes.InvalidArgument, "missing link")
	}
	l := copyLink(req.Link)
	s.session.Links = append(s.session.Links, l)
	return &api.AddLinkResponse{
		Result:       !f.rejects[api.MethodAddLink],
		InterfaceOne: l.InterfaceOne.Copy(),
		InterfaceTwo: l.InterfaceTwo.Copy(),
	}, nil
}

func (f *FakeCore) DeleteLink(ctx context.Context, req *api.DeleteLinkRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodDeleteLink); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	found := false
	links := s.session.Links[:0]
	for _, l := range s.session.Links {
		if (l.NodeOneID == req.NodeOneID && l.NodeTwoID == req.NodeTwoID) ||
			(l.NodeOneID == req.NodeTwoID && l.NodeTwoID == req.NodeOneID) {
			found = true
			continue
		}
		links = append(links, l)
	}
	s.session.Links = links
	return f.result(api.MethodDeleteLink, found), nil
}

func (f *FakeCore) StartSession(ctx context.Context, req *api.StartSessionRequest) (*api.StartSessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodStartSession); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	s.started = req
	if f.rejects[api.MethodStartSession] {
		return &api.StartSessionResponse{Exceptions: f.exceptions}, nil
	}

	s.session.Nodes = nil
	for _, n := range req.Nodes {
		s.session.Nodes = append(s.session.Nodes, n.Copy())
	}
	s.session.Links = nil
	for _, l := range req.Links {
		s.session.Links = append(s.session.Links, copyLink(l))
	}
	s.hooks = req.Hooks
	for _, c := range req.WlanConfigs {
		s.wlan[c.NodeID] = c.Config
	}
	s.session.State = api.SessionStateRuntime
	return &api.StartSessionResponse{Result: true}, nil
}

func (f *FakeCore) StopSession(ctx context.Context, req *api.StopSessionRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodStopSession); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	resp := f.result(api.MethodStopSession, true)
	if resp.Result {
		s.session.State = api.SessionStateShutdown
	}
	return resp, nil
}

func (f *FakeCore) SaveXML(ctx context.Context, req *api.SaveXMLRequest) (*api.SaveXMLResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodSaveXML); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	data := fmt.Sprintf("<?xml version=\"1.0\"?>\n<scenario name=\"session-%d\" nodes=\"%d\" links=\"%d\"/>\n",
		s.session.ID, len(s.session.Nodes), len(s.session.Links))
	f.saved[data] = copySession(s.session)
	return &api.SaveXMLResponse{Data: []byte(data)}, nil
}

// OpenXML only accepts documents produced by SaveXML.
func (f *FakeCore) OpenXML(ctx context.Context, req *api.OpenXMLRequest) (*api.OpenXMLResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodOpenXML); err != nil {
		return nil, err
	}
	saved, ok := f.saved[string(req.Data)]
	if !ok || f.rejects[api.MethodOpenXML] {
		return &api.OpenXMLResponse{}, nil
	}
	c := copySession(saved)
	c.ID = f.nextSession
	c.State = api.SessionStateDefinition
	f.nextSession++
	f.sessions[c.ID] = &fakeSession{
		session: c,
		wlan:    make(map[int32]map[string]string),
	}
	return &api.OpenXMLResponse{Result: true, SessionID: c.ID}, nil
}

func (f *FakeCore) GetServices(ctx context.Context, req *api.GetServicesRequest) (*api.GetServicesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodGetServices); err != nil {
		return nil, err
	}
	return &api.GetServicesResponse{Services: f.services}, nil
}

func (f *FakeCore) SetWlanConfig(ctx context.Context, req *api.SetWlanConfigRequest) (*api.ResultResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call(api.MethodSetWlanConfig); err != nil {
		return nil, err
	}
	s, err := f.get(req.SessionID)
	if err != nil {
		return nil, err
	}
	s.wlan[req.NodeID] = req.Config
	return f.result(api.MethodSetWlanConfig, true), nil
}

func (f *FakeCore) Events(req *api.EventsRequest, stream api.CoreAPI_EventsServer) error {
	f.mu.Lock()
	if err := f.call(api.MethodEvents); err != nil {
		f.mu.Unlock()
		return err
	}
	if _, err := f.get(req.SessionID); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	ch, cancel := f.queue.CallbackWatch(events.MatcherFunc(func(ev events.Event) bool {
		e, ok := ev.(*api.Event)
		return ok && e.SessionID == req.SessionID
	}))
	defer cancel()

	f.mu.Lock()
	f.subscribers[req.SessionID]++
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.subscribers[req.SessionID]--
		f.mu.Unlock()
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(ev.(*api.Event)); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return stream.Context().Err()
		}
	}
}

func copySession(s *api.Session) *api.Session {
	c := *s
	c.Nodes = nil
	for _, n := range s.Nodes {
		c.Nodes = append(c.Nodes, n.Copy())
	}
	c.Links = nil
	for _, l := range s.Links {
		c.Links = append(c.Links, copyLink(l))
	}
	return &c
}

func copyLink(l *api.Link) *api.Link {
	c := *l
	c.InterfaceOne = l.InterfaceOne.Copy()
	c.InterfaceTwo = l.InterfaceTwo.Copy()
	if l.Options != nil {
		o := *l.Options
		c.Options = &o
	}
	return &c
}
