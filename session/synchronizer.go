// Package session keeps a topology store in sync with a session of the
// emulation backend.
package session

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/ioutils"
	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/topology"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type task struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	errs chan error
}

// Synchronizer keeps a topology store consistent with a remote session.
//
// Every store mutation runs on the loop started by Run. The exported
// operations submit their work to the loop and block until it is done, so
// they may be called from any goroutine once Run is running. Events of the
// joined session are read by a separate goroutine and applied on the loop as
// well.
type Synchronizer struct {
	backend Backend
	store   *topology.Store
	config  Config
	limiter *rate.Limiter

	tasks  chan task
	remote chan *api.Event
	closed chan struct{}

	// runCtx is the context of the loop. Subscriptions derive from it.
	runCtx       context.Context
	cancelEvents context.CancelFunc

	// mu guards the fields read outside of the loop. They are only written
	// on the loop.
	mu        sync.RWMutex
	sessionID int32
	state     api.SessionState
	hooks     map[string]*api.Hook
	services  map[string][]*api.Service

	wlanConfigs     map[int32]map[string]string
	mobilityConfigs map[int32]map[string]string
}

// New returns a Synchronizer driving store from backend.
func New(backend Backend, store *topology.Store, config Config) *Synchronizer {
	if config.Wlan == nil {
		config.Wlan = DefaultWlanConfig()
	}
	if config.PositionBurst <= 0 {
		config.PositionBurst = 1
	}
	return &Synchronizer{
		backend:         backend,
		store:           store,
		config:          config,
		limiter:         rate.NewLimiter(config.PositionRate, config.PositionBurst),
		tasks:           make(chan task),
		remote:          make(chan *api.Event),
		closed:          make(chan struct{}),
		hooks:           make(map[string]*api.Hook),
		services:        make(map[string][]*api.Service),
		wlanConfigs:     make(map[int32]map[string]string),
		mobilityConfigs: make(map[int32]map[string]string),
	}
}

// Store returns the store kept in sync.
func (s *Synchronizer) Store() *topology.Store {
	return s.store
}

// Run runs the mutation loop until ctx is canceled. It must only be called
// once.
func (s *Synchronizer) Run(ctx context.Context) error {
	ctx = log.WithModule(ctx, "session")
	log.G(ctx).Debug("(*Synchronizer).Run")
	s.runCtx = ctx
	defer func() {
		s.stopEvents()
		close(s.closed)
	}()

	for {
		select {
		case t := <-s.tasks:
			t.errs <- t.fn(log.WithModule(t.ctx, "session"))
		case ev := <-s.remote:
			s.handleEvent(ctx, ev)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// do runs fn on the loop and returns its error.
func (s *Synchronizer) do(ctx context.Context, fn func(ctx context.Context) error) error {
	t := task{ctx: ctx, fn: fn, errs: make(chan error, 1)}
	select {
	case s.tasks <- t:
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-t.errs
}

// SessionID returns the id of the joined session, or 0.
func (s *Synchronizer) SessionID() int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// State returns the last state acknowledged by the backend for the joined
// session.
func (s *Synchronizer) State() api.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Hooks returns the hooks of the joined session, ordered by file name.
func (s *Synchronizer) Hooks() []*api.Hook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedHooks()
}

func (s *Synchronizer) sortedHooks() []*api.Hook {
	hooks := make([]*api.Hook, 0, len(s.hooks))
	for _, h := range s.hooks {
		c := *h
		hooks = append(hooks, &c)
	}
	sort.Slice(hooks, func(i, j int) bool {
		return hooks[i].File < hooks[j].File
	})
	return hooks
}

// Services returns the services offered by the backend, grouped by group.
// It is filled by Connect.
func (s *Synchronizer) Services() map[string][]*api.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	services := make(map[string][]*api.Service, len(s.services))
	for group, list := range s.services {
		services[group] = append([]*api.Service(nil), list...)
	}
	return services
}

func (s *Synchronizer) setState(state api.SessionState) {
	s.mu.Lock()
	s.state = state
	id := s.sessionID
	s.mu.Unlock()
	s.store.Queue().Publish(EventSessionState{SessionID: id, State: state})
}

func (s *Synchronizer) runtime() bool {
	return s.sessionID != 0 && s.state == api.SessionStateRuntime
}

// Connect loads the services offered by the backend and lists its sessions.
// When there are none a new session is created and joined.
func (s *Synchronizer) Connect(ctx context.Context) ([]*api.SessionSummary, error) {
	var sessions []*api.SessionSummary
	err := s.do(ctx, func(ctx context.Context) error {
		services, err := s.backend.GetServices(ctx)
		if err != nil {
			return err
		}
		grouped := make(map[string][]*api.Service)
		for _, service := range services {
			grouped[service.Group] = append(grouped[service.Group], service)
		}
		s.mu.Lock()
		s.services = grouped
		s.mu.Unlock()

		sessions, err = s.backend.GetSessions(ctx)
		if err != nil {
			return err
		}
		if len(sessions) > 0 {
			return nil
		}
		log.G(ctx).Info("no sessions found, creating one")
		_, err = s.createSession(ctx)
		return err
	})
	return sessions, err
}

// Sessions lists the sessions of the backend.
func (s *Synchronizer) Sessions(ctx context.Context) ([]*api.SessionSummary, error) {
	var sessions []*api.SessionSummary
	err := s.do(ctx, func(ctx context.Context) (err error) {
		sessions, err = s.backend.GetSessions(ctx)
		return err
	})
	return sessions, err
}

// CreateSession creates a session and joins it.
func (s *Synchronizer) CreateSession(ctx context.Context) (int32, error) {
	var id int32
	err := s.do(ctx, func(ctx context.Context) (err error) {
		id, err = s.createSession(ctx)
		return err
	})
	return id, err
}

func (s *Synchronizer) createSession(ctx context.Context) (int32, error) {
	id, err := s.backend.CreateSession(ctx)
	if err != nil {
		return 0, err
	}
	log.G(ctx).WithField("session.id", id).Info("created session")
	return id, s.join(ctx, id)
}

// JoinSession replaces the local topology with the one of session id.
func (s *Synchronizer) JoinSession(ctx context.Context, id int32) error {
	return s.do(ctx, func(ctx context.Context) error {
		return s.join(ctx, id)
	})
}

// join fetches the snapshot and hooks of session id, clears the local state,
// hydrates the store from the snapshot and subscribes to the session events.
// The local state is left untouched if the snapshot can't be fetched.
func (s *Synchronizer) join(ctx context.Context, id int32) error {
	logger := log.G(ctx).WithField("session.id", id)
	logger.Debug("joining session")

	snapshot, err := s.backend.GetSession(ctx, id)
	if err != nil {
		return err
	}
	hooks, err := s.backend.GetHooks(ctx, id)
	if err != nil {
		return err
	}

	s.stopEvents()
	if err := s.store.Reset(id); err != nil {
		return err
	}
	s.wlanConfigs = make(map[int32]map[string]string)
	s.mobilityConfigs = make(map[int32]map[string]string)

	// ids of nodes that can't be placed are still taken in the session
	for _, node := range snapshot.Nodes {
		s.store.ReserveNodeID(node.ID)
	}
	for _, node := range snapshot.Nodes {
		var placement topology.Position
		if node.Position != nil {
			placement = topology.Position{X: float64(node.Position.X), Y: float64(node.Position.Y)}
		}
		if _, err := s.store.AddPreexistingNode(placement, node); err != nil {
			logger.WithError(err).WithField("node_id", node.ID).Warn("skipping node")
		}
	}
	for _, link := range snapshot.Links {
		if _, err := s.store.AddPreexistingEdge(link); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"node_one": link.NodeOneID,
				"node_two": link.NodeTwoID,
			}).Warn("skipping link")
		}
	}
	s.store.RebuildReusePool()

	s.mu.Lock()
	s.sessionID = id
	s.state = snapshot.State
	s.hooks = make(map[string]*api.Hook, len(hooks))
	for _, h := range hooks {
		c := *h
		s.hooks[h.File] = &c
	}
	joined := EventJoin{
		SessionID: id,
		State:     snapshot.State,
		Hooks:     s.sortedHooks(),
	}
	s.mu.Unlock()

	if err := s.subscribe(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to subscribe to events of session %d", id)
	}

	joined.Nodes, joined.Edges = s.store.Snapshot()
	s.store.Queue().Publish(joined)
	logger.WithFields(logrus.Fields{
		"state": snapshot.State.String(),
		"nodes": len(joined.Nodes),
		"edges": len(joined.Edges),
	}).Info("joined session")
	return nil
}

func (s *Synchronizer) subscribe(ctx context.Context, id int32) error {
	// The stream outlives the call that joined the session, so it derives
	// from the loop context.
	eventsCtx, cancel := context.WithCancel(log.WithLogger(s.runCtx, log.G(ctx).WithField("session.id", id)))
	stream, err := s.backend.Events(eventsCtx, id)
	if err != nil {
		cancel()
		return err
	}
	s.cancelEvents = cancel
	go s.listen(eventsCtx, stream)
	return nil
}

func (s *Synchronizer) stopEvents() {
	if s.cancelEvents != nil {
		s.cancelEvents()
		s.cancelEvents = nil
	}
}

// ShutdownSession tears a session down. An id <= 0 means the joined session.
// A session in RUNTIME is first moved to DATACOLLECT, then its links and
// nodes are deleted before the session itself. Shutting down the joined
// session clears the local state.
func (s *Synchronizer) ShutdownSession(ctx context.Context, id int32) error {
	return s.do(ctx, func(ctx context.Context) error {
		if id <= 0 {
			id = s.sessionID
		}
		if id == 0 {
			return ErrNoSession
		}
		logger := log.G(ctx).WithField("session.id", id)

		snapshot, err := s.backend.GetSession(ctx, id)
		if err != nil {
			return err
		}
		if snapshot.State == api.SessionStateRuntime {
			if err := s.backend.SetSessionState(ctx, id, api.SessionStateDatacollect); err != nil {
				return err
			}
			if id == s.sessionID {
				s.setState(api.SessionStateDatacollect)
			}
			for _, link := range snapshot.Links {
				if err := s.backend.DeleteLink(ctx, id, link); err != nil {
					return err
				}
			}
			for _, node := range snapshot.Nodes {
				if err := s.backend.DeleteNode(ctx, id, node.ID); err != nil {
					return err
				}
			}
		}
		if err := s.backend.DeleteSession(ctx, id); err != nil {
			return err
		}
		logger.Info("deleted session")

		if id != s.sessionID {
			return nil
		}
		s.stopEvents()
		if err := s.store.Reset(0); err != nil {
			return err
		}
		s.wlanConfigs = make(map[int32]map[string]string)
		s.mobilityConfigs = make(map[int32]map[string]string)
		s.mu.Lock()
		s.sessionID = 0
		s.state = api.SessionStateNone
		s.hooks = make(map[string]*api.Hook)
		s.mu.Unlock()
		return nil
	})
}

// StartSession sends the local topology, hooks and node configurations to
// the backend and starts the joined session. The store is not changed.
func (s *Synchronizer) StartSession(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context) error {
		if s.sessionID == 0 {
			return ErrNoSession
		}
		req := s.startRequest()
		log.G(ctx).WithFields(logrus.Fields{
			"session.id": s.sessionID,
			"nodes":      len(req.Nodes),
			"links":      len(req.Links),
		}).Debug("starting session")
		if err := s.backend.StartSession(ctx, req); err != nil {
			return err
		}
		return s.refreshState(ctx)
	})
}

func (s *Synchronizer) startRequest() *api.StartSessionRequest {
	nodes, edges := s.store.Snapshot()
	req := &api.StartSessionRequest{
		SessionID: s.sessionID,
		Hooks:     s.Hooks(),
	}
	for _, n := range nodes {
		req.Nodes = append(req.Nodes, n.APINode())
	}
	for _, e := range edges {
		// wireless links are created by the wireless model
		if e.Wireless() {
			continue
		}
		req.Links = append(req.Links, e.APILink())
	}
	for _, nodeID := range sortedKeys(s.wlanConfigs) {
		req.WlanConfigs = append(req.WlanConfigs, &api.WlanConfig{
			NodeID: nodeID,
			Config: copyConfig(s.wlanConfigs[nodeID]),
		})
	}
	for _, nodeID := range sortedKeys(s.mobilityConfigs) {
		req.MobilityConfigs = append(req.MobilityConfigs, &api.MobilityConfig{
			NodeID: nodeID,
			Config: copyConfig(s.mobilityConfigs[nodeID]),
		})
	}
	return req
}

func sortedKeys(m map[int32]map[string]string) []int32 {
	keys := make([]int32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// StopSession stops the joined session.
func (s *Synchronizer) StopSession(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context) error {
		if s.sessionID == 0 {
			return ErrNoSession
		}
		if err := s.backend.StopSession(ctx, s.sessionID); err != nil {
			return err
		}
		return s.refreshState(ctx)
	})
}

func (s *Synchronizer) refreshState(ctx context.Context) error {
	snapshot, err := s.backend.GetSession(ctx, s.sessionID)
	if err != nil {
		return err
	}
	s.setState(snapshot.State)
	return nil
}

// SetSessionState requests the joined session to move to the state called
// name. Unknown names fail with api.ErrInvalidState and nothing is sent.
func (s *Synchronizer) SetSessionState(ctx context.Context, name string) error {
	state, err := api.ParseSessionState(name)
	if err != nil {
		return err
	}
	return s.do(ctx, func(ctx context.Context) error {
		if s.sessionID == 0 {
			return ErrNoSession
		}
		if err := s.backend.SetSessionState(ctx, s.sessionID, state); err != nil {
			return err
		}
		s.setState(state)
		return nil
	})
}

// AddHook adds or replaces the hook with the same file name. Hooks are sent
// to the backend when the session is started.
func (s *Synchronizer) AddHook(ctx context.Context, hook *api.Hook) error {
	if hook == nil || hook.File == "" {
		return errors.New("session: hook needs a file name")
	}
	c := *hook
	return s.do(ctx, func(ctx context.Context) error {
		s.mu.Lock()
		s.hooks[c.File] = &c
		s.mu.Unlock()
		return nil
	})
}

// SaveXML writes the XML rendering of the joined session to path.
func (s *Synchronizer) SaveXML(ctx context.Context, path string) error {
	return s.do(ctx, func(ctx context.Context) error {
		if s.sessionID == 0 {
			return ErrNoSession
		}
		data, err := s.backend.SaveXML(ctx, s.sessionID)
		if err != nil {
			return err
		}
		if err := ioutils.AtomicWriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.G(ctx).WithField("file", path).Info("saved session")
		return nil
	})
}

// OpenXML loads the session stored in the XML file at path and joins it.
func (s *Synchronizer) OpenXML(ctx context.Context, path string) (int32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %s", path)
	}
	var id int32
	err = s.do(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.backend.OpenXML(ctx, data, filepath.Base(path))
		if err != nil {
			return err
		}
		return s.join(ctx, id)
	})
	return id, err
}
