// Package topology holds the nodes, interfaces and edges of a session in an
// in-memory store and publishes every committed change.
package topology

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"sync"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/internal/idm"
	"github.com/coreemu/coretk/internal/ipam"
	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/watch"
	metrics "github.com/docker/go-metrics"
	memdb "github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store owns the node, edge and interface graph of one session. Nodes are
// keyed by their local id and mapped to the remote node id. All changes go
// through the Store's methods; each runs in a single transaction that is
// discarded on error, so a failed operation leaves the store unchanged.
//
// Committed changes are published on Queue.
type Store struct {
	// updateLock must be held during an update transaction.
	updateLock sync.Mutex

	memDB  *memdb.MemDB
	queue  *watch.Queue
	logger *logrus.Entry

	ids   *idm.IDM
	addrs *ipam.Allocator
	// lastEdge is the most recently added edge and lastMark the address
	// allocator position before it. Deleting that edge rewinds to lastMark.
	lastEdge *Token
	lastMark ipam.Mark

	sessionID int32
	nextLocal int
}

// NewStore returns an empty store allocating interface addresses from addrs.
// A nil addrs uses ipam.Default.
func NewStore(ctx context.Context, addrs *ipam.Allocator) *Store {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		// This shouldn't fail
		panic(err)
	}
	if addrs == nil {
		addrs = ipam.Default()
	}

	return &Store{
		memDB:     memDB,
		queue:     watch.NewQueue(),
		logger:    log.G(log.WithModule(ctx, "topology")),
		ids:       idm.New(),
		addrs:     addrs,
		nextLocal: 1,
	}
}

// Queue returns the queue change events are published on.
func (s *Store) Queue() *watch.Queue {
	return s.queue
}

// Close closes the event queue.
func (s *Store) Close() error {
	return s.queue.Close()
}

type tx struct {
	memDBTx    *memdb.Txn
	changelist []interface{}
}

func (t *tx) publish(ev interface{}) {
	t.changelist = append(t.changelist, ev)
}

func (s *Store) update(op string, cb func(*tx) error) error {
	defer metrics.StartTimer(operationLatency.WithValues(op))()

	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	t := &tx{memDBTx: s.memDB.Txn(true)}
	if err := cb(t); err != nil {
		t.memDBTx.Abort()
		s.logger.WithError(err).WithField("operation", op).Error("topology operation failed")
		return err
	}
	t.memDBTx.Commit()

	s.updateGauges()
	for _, ev := range t.changelist {
		s.queue.Publish(ev)
	}
	return nil
}

func (s *Store) updateGauges() {
	txn := s.memDB.Txn(false)
	nodesGauge.Set(float64(count(txn, tableNode)))
	edgesGauge.Set(float64(count(txn, tableEdge)))
}

func count(txn *memdb.Txn, table string) int {
	it, err := txn.Get(table, indexID)
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

func getNode(txn *memdb.Txn, localID int) *Node {
	obj, err := txn.First(tableNode, indexID, localID)
	if err != nil || obj == nil {
		return nil
	}
	return obj.(nodeEntry).Node
}

func getNodeByRemote(txn *memdb.Txn, nodeID int32) *Node {
	obj, err := txn.First(tableNode, indexRemote, nodeID)
	if err != nil || obj == nil {
		return nil
	}
	return obj.(nodeEntry).Node
}

func getEdge(txn *memdb.Txn, token Token) *Edge {
	obj, err := txn.First(tableEdge, indexID, token)
	if err != nil || obj == nil {
		return nil
	}
	return obj.(edgeEntry).Edge
}

func interfacesOf(txn *memdb.Txn, nodeID int32) []interfaceEntry {
	it, err := txn.Get(tableInterface, indexNode, nodeID)
	if err != nil {
		return nil
	}
	var entries []interfaceEntry
	for obj := it.Next(); obj != nil; obj = it.Next() {
		entries = append(entries, obj.(interfaceEntry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Interface.ID < entries[j].Interface.ID
	})
	return entries
}

func edgesOf(txn *memdb.Txn, localID int) []*Edge {
	var edges []*Edge
	for _, index := range []string{indexLow, indexHigh} {
		it, err := txn.Get(tableEdge, index, localID)
		if err != nil {
			continue
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			edges = append(edges, obj.(edgeEntry).Edge)
		}
	}
	sortEdges(edges)
	return edges
}

func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Token.Low != edges[j].Token.Low {
			return edges[i].Token.Low < edges[j].Token.Low
		}
		return edges[i].Token.High < edges[j].Token.High
	})
}

// withInterfaces returns a copy of n carrying its current interfaces.
func withInterfaces(txn *memdb.Txn, n *Node) *Node {
	c := n.Copy()
	c.Interfaces = nil
	for _, entry := range interfacesOf(txn, n.NodeID) {
		c.Interfaces = append(c.Interfaces, entry.Interface.Copy())
	}
	return c
}

// lowestFreeInterfaceID returns the smallest interface id not used on the
// node. With contiguous ids this is the node's interface count.
func lowestFreeInterfaceID(txn *memdb.Txn, nodeID int32) int32 {
	var id int32
	for _, entry := range interfacesOf(txn, nodeID) {
		if entry.Interface.ID != id {
			break
		}
		id++
	}
	return id
}

// AddNode places a new node. kind is resolved with ParseKind; an
// unrecognized kind fails with ErrUnknownKind. The node id is taken from the
// id allocator. An empty name defaults to "n<node id>".
func (s *Store) AddNode(kind, model string, pos Position, name string) (*Node, error) {
	k, err := ParseKind(kind, model)
	if err != nil {
		s.logger.WithError(err).Error("invalid node kind")
		return nil, err
	}

	var created *Node
	err = s.update("add_node", func(t *tx) error {
		nodeID := int32(s.ids.Peek())
		if getNodeByRemote(t.memDBTx, nodeID) != nil {
			return ErrNodeExists{NodeID: nodeID}
		}
		n := &Node{
			LocalID:   s.nextLocal,
			SessionID: s.sessionID,
			NodeID:    nodeID,
			Kind:      k,
			Name:      name,
			Position:  pos,
		}
		if n.Name == "" {
			n.Name = fmt.Sprintf("n%d", nodeID)
		}
		if err := t.memDBTx.Insert(tableNode, nodeEntry{n}); err != nil {
			return err
		}
		s.ids.Allocate()
		s.nextLocal++

		created = n.Copy()
		t.publish(EventAddNode{Node: n.Copy()})
		s.logger.WithFields(logrus.Fields{
			"local_id": n.LocalID,
			"node_id":  n.NodeID,
			"kind":     k.String(),
		}).Debug("added node")
		return nil
	})
	return created, err
}

// AddPreexistingNode hydrates a node reported by the remote session, drawn
// at placement. Its id is marked preexisting in the id allocator, which
// keeps it from being handed out locally.
func (s *Store) AddPreexistingNode(placement Position, remote *api.Node) (*Node, error) {
	if remote == nil {
		return nil, errors.New("topology: nil remote node")
	}
	k, err := KindOf(remote.Type, remote.Model)
	if err != nil {
		return nil, err
	}

	var created *Node
	err = s.update("add_preexisting_node", func(t *tx) error {
		if getNodeByRemote(t.memDBTx, remote.ID) != nil {
			return ErrNodeExists{NodeID: remote.ID}
		}
		n := &Node{
			LocalID:     s.nextLocal,
			SessionID:   s.sessionID,
			NodeID:      remote.ID,
			Kind:        k,
			Name:        remote.Name,
			Position:    placement,
			Preexisting: true,
			Icon:        remote.Icon,
			Image:       remote.Image,
			Server:      remote.Server,
			Services:    append([]string(nil), remote.Services...),
		}
		if err := t.memDBTx.Insert(tableNode, nodeEntry{n}); err != nil {
			return err
		}
		s.ids.MarkPreexisting(int(remote.ID))
		s.nextLocal++

		created = n.Copy()
		t.publish(EventAddNode{Node: n.Copy()})
		return nil
	})
	return created, err
}

// AddEdge connects the nodes with local ids local1 and local2. The edge is
// identified by the unordered pair of ids, and a second edge between the same
// pair fails with ErrDuplicateEdge. A fresh subnet is allocated for the edge
// and every network layer endpoint gets a new interface addressed from it.
func (s *Store) AddEdge(local1, local2 int) (*Edge, error) {
	var created *Edge
	err := s.update("add_edge", func(t *tx) (err error) {
		if local1 == local2 {
			return ErrSameEndpoint
		}
		n1 := getNode(t.memDBTx, local1)
		if n1 == nil {
			return ErrUnknownNode{ID: local1}
		}
		n2 := getNode(t.memDBTx, local2)
		if n2 == nil {
			return ErrUnknownNode{ID: local2}
		}
		token := NewToken(local1, local2)
		if getEdge(t.memDBTx, token) != nil {
			return ErrDuplicateEdge{Token: token}
		}

		mark := s.addrs.Mark()
		subnet, err := s.addrs.NewSubnet()
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				s.addrs.Rewind(mark)
			}
		}()

		e := &Edge{
			Token:     token,
			SessionID: s.sessionID,
			LocalID1:  local1,
			LocalID2:  local2,
			NodeID1:   n1.NodeID,
			NodeID2:   n2.NodeID,
			Kind1:     n1.Kind,
			Kind2:     n2.Kind,
			Type:      api.LinkTypeWired,
		}
		if n1.Kind.IsNetworkLayer() {
			if e.Interface1, err = s.newInterface(t, n1, token); err != nil {
				return err
			}
		}
		if n2.Kind.IsNetworkLayer() {
			if e.Interface2, err = s.newInterface(t, n2, token); err != nil {
				return err
			}
		}
		if err := t.memDBTx.Insert(tableEdge, edgeEntry{e}); err != nil {
			return err
		}

		s.lastEdge = &token
		s.lastMark = mark
		created = e.Copy()
		t.publish(EventAddEdge{Edge: e.Copy()})
		s.logger.WithFields(logrus.Fields{
			"token":  token.String(),
			"subnet": subnet.String(),
		}).Debug("added edge")
		return nil
	})
	return created, err
}

func (s *Store) newInterface(t *tx, n *Node, token Token) (*api.Interface, error) {
	addr, err := s.addrs.NextAddress()
	if err != nil {
		return nil, err
	}
	id := lowestFreeInterfaceID(t.memDBTx, n.NodeID)
	iface := &api.Interface{
		ID:      id,
		Name:    fmt.Sprintf("eth%d", id),
		IP4:     addr.Addr().String(),
		IP4Mask: int32(addr.Bits()),
		NodeID:  n.NodeID,
	}
	entry := interfaceEntry{
		NodeID:    n.NodeID,
		LocalID:   n.LocalID,
		Token:     token,
		Interface: iface,
	}
	if err := t.memDBTx.Insert(tableInterface, entry); err != nil {
		return nil, err
	}
	s.logger.Debugf("map node id %d, interface id %d to edge token %v", n.NodeID, id, token)
	return iface.Copy(), nil
}

// AddPreexistingEdge rebuilds an edge from a link reported by the remote
// session. The link's own interfaces are kept, and their subnets are
// reserved so that local allocation never overlaps them.
func (s *Store) AddPreexistingEdge(link *api.Link) (*Edge, error) {
	if link == nil {
		return nil, errors.New("topology: nil remote link")
	}

	var created *Edge
	err := s.update("add_preexisting_edge", func(t *tx) error {
		n1 := getNodeByRemote(t.memDBTx, link.NodeOneID)
		if n1 == nil {
			return ErrUnknownNode{ID: int(link.NodeOneID), Remote: true}
		}
		n2 := getNodeByRemote(t.memDBTx, link.NodeTwoID)
		if n2 == nil {
			return ErrUnknownNode{ID: int(link.NodeTwoID), Remote: true}
		}
		if n1.LocalID == n2.LocalID {
			return ErrSameEndpoint
		}
		token := NewToken(n1.LocalID, n2.LocalID)
		if getEdge(t.memDBTx, token) != nil {
			return ErrDuplicateEdge{Token: token}
		}

		e := &Edge{
			Token:     token,
			SessionID: s.sessionID,
			LocalID1:  n1.LocalID,
			LocalID2:  n2.LocalID,
			NodeID1:   n1.NodeID,
			NodeID2:   n2.NodeID,
			Kind1:     n1.Kind,
			Kind2:     n2.Kind,
			Type:      link.Type,
		}
		if link.Options != nil {
			o := *link.Options
			e.Options = &o
		}

		var entries []interfaceEntry
		for _, endpoint := range []struct {
			node  *Node
			iface *api.Interface
			dst   **api.Interface
		}{
			{n1, link.InterfaceOne, &e.Interface1},
			{n2, link.InterfaceTwo, &e.Interface2},
		} {
			if endpoint.iface == nil || !endpoint.node.Kind.IsNetworkLayer() {
				continue
			}
			iface := endpoint.iface.Copy()
			iface.NodeID = endpoint.node.NodeID
			if obj, _ := t.memDBTx.First(tableInterface, indexID, interfaceKey(iface.NodeID, iface.ID)); obj != nil {
				return errors.Errorf("topology: interface %d of node %d already exists", iface.ID, iface.NodeID)
			}
			*endpoint.dst = iface
			entries = append(entries, interfaceEntry{
				NodeID:    iface.NodeID,
				LocalID:   endpoint.node.LocalID,
				Token:     token,
				Interface: iface.Copy(),
			})
		}

		for _, entry := range entries {
			if err := t.memDBTx.Insert(tableInterface, entry); err != nil {
				return err
			}
		}
		if err := t.memDBTx.Insert(tableEdge, edgeEntry{e}); err != nil {
			return err
		}
		for _, entry := range entries {
			s.reserve(entry.Interface)
		}

		created = e.Copy()
		t.publish(EventAddEdge{Edge: e.Copy()})
		return nil
	})
	return created, err
}

func (s *Store) reserve(iface *api.Interface) {
	if iface.IP4 == "" {
		return
	}
	addr, err := netip.ParseAddr(iface.IP4)
	if err != nil || !addr.Is4() {
		s.logger.WithError(err).Warnf("ignoring address %q of node %d", iface.IP4, iface.NodeID)
		return
	}
	bits := int(iface.IP4Mask)
	if bits <= 0 || bits > 32 {
		bits = 32
	}
	s.addrs.Reserve(netip.PrefixFrom(addr, bits))
}

// DeleteEdge removes the edge identified by token, along with the interfaces
// created for it on both endpoints. Deleting the most recently added edge
// gives its subnet back to the address allocator.
func (s *Store) DeleteEdge(token Token) (*Edge, error) {
	var deleted *Edge
	err := s.update("delete_edge", func(t *tx) error {
		e := getEdge(t.memDBTx, token)
		if e == nil {
			return ErrUnknownEdge{Token: token}
		}
		if err := s.deleteEdge(t, e); err != nil {
			return err
		}
		if s.lastEdge != nil && *s.lastEdge == token {
			s.addrs.Rewind(s.lastMark)
			s.lastEdge = nil
		}
		deleted = e.Copy()
		return nil
	})
	return deleted, err
}

func (s *Store) deleteEdge(t *tx, e *Edge) error {
	if _, err := t.memDBTx.DeleteAll(tableInterface, indexEdge, e.Token); err != nil {
		return err
	}
	if err := t.memDBTx.Delete(tableEdge, edgeEntry{e}); err != nil {
		return err
	}
	t.publish(EventDeleteEdge{Edge: e.Copy()})
	return nil
}

// DeleteNode removes the node with the given local id, every edge attached
// to it and the interfaces of those edges on the peer nodes. The node id is
// released to the id allocator. An absent id fails with ErrUnknownNode.
func (s *Store) DeleteNode(localID int) error {
	return s.update("delete_node", func(t *tx) error {
		n := getNode(t.memDBTx, localID)
		if n == nil {
			return ErrUnknownNode{ID: localID}
		}
		for _, e := range edgesOf(t.memDBTx, localID) {
			if err := s.deleteEdge(t, e); err != nil {
				return err
			}
		}
		if _, err := t.memDBTx.DeleteAll(tableInterface, indexNode, n.NodeID); err != nil {
			return err
		}
		if err := t.memDBTx.Delete(tableNode, nodeEntry{n}); err != nil {
			return err
		}
		if err := s.ids.Release(int(n.NodeID)); err != nil {
			s.logger.WithError(err).Warn("node id was not allocated")
		}
		c := n.Copy()
		c.Interfaces = nil
		t.publish(EventDeleteNode{Node: c})
		return nil
	})
}

// UpdatePosition moves the node with the given local id. It only changes the
// store; pushing the position to the backend is up to the caller.
func (s *Store) UpdatePosition(localID int, x, y float64) error {
	return s.update("update_position", func(t *tx) error {
		n := getNode(t.memDBTx, localID)
		if n == nil {
			return ErrUnknownNode{ID: localID}
		}
		c := n.Copy()
		c.Position = Position{X: x, Y: y}
		if err := t.memDBTx.Insert(tableNode, nodeEntry{c}); err != nil {
			return err
		}
		t.publish(EventMoveNode{Node: withInterfaces(t.memDBTx, c)})
		return nil
	})
}

// ReserveNodeID marks nodeID as used by the remote session, whether or not
// the node can be placed locally. The id is never handed out until the next
// Reset.
func (s *Store) ReserveNodeID(nodeID int32) {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()
	s.ids.MarkPreexisting(int(nodeID))
}

// RebuildReusePool makes every node id below the allocator's low-water mark
// that is not in use reusable. It is called once a join has hydrated every
// preexisting node, and does nothing when called again.
func (s *Store) RebuildReusePool() {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()

	s.ids.RebuildReusePool()
	s.logger.WithFields(logrus.Fields{
		"next":     s.ids.Next(),
		"reusable": s.ids.Reusable(),
	}).Debug("rebuilt node id pool")
}

// Reset clears the store, the id allocator and the address allocator, and
// binds the store to sessionID.
func (s *Store) Reset(sessionID int32) error {
	return s.update("reset", func(t *tx) error {
		for _, table := range []string{tableInterface, tableEdge, tableNode} {
			if _, err := t.memDBTx.DeleteAll(table, indexID); err != nil {
				return err
			}
		}
		s.ids.Reset()
		s.addrs.Reset()
		s.lastEdge = nil
		s.nextLocal = 1
		s.sessionID = sessionID
		t.publish(EventReset{SessionID: sessionID})
		return nil
	})
}

// SessionID returns the session the store is bound to.
func (s *Store) SessionID() int32 {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()
	return s.sessionID
}

// PeekNodeID returns the node id the next AddNode will use.
func (s *Store) PeekNodeID() int {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()
	return s.ids.Peek()
}

// NextNodeID returns the id allocator's low-water mark.
func (s *Store) NextNodeID() int {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()
	return s.ids.Next()
}

// ReusableNodeIDs returns the sorted ids the allocator will hand out before
// advancing its low-water mark.
func (s *Store) ReusableNodeIDs() []int {
	s.updateLock.Lock()
	defer s.updateLock.Unlock()
	return s.ids.Reusable()
}

// Node looks up a node by local id.
// Returns nil if the node doesn't exist.
func (s *Store) Node(localID int) *Node {
	txn := s.memDB.Txn(false)
	n := getNode(txn, localID)
	if n == nil {
		return nil
	}
	return withInterfaces(txn, n)
}

// NodeByRemote looks up a node by remote node id.
// Returns nil if the node doesn't exist.
func (s *Store) NodeByRemote(nodeID int32) *Node {
	txn := s.memDB.Txn(false)
	n := getNodeByRemote(txn, nodeID)
	if n == nil {
		return nil
	}
	return withInterfaces(txn, n)
}

// LocalID maps a remote node id to the local id.
func (s *Store) LocalID(nodeID int32) (int, bool) {
	n := getNodeByRemote(s.memDB.Txn(false), nodeID)
	if n == nil {
		return 0, false
	}
	return n.LocalID, true
}

// RemoteID maps a local id to the remote node id.
func (s *Store) RemoteID(localID int) (int32, bool) {
	n := getNode(s.memDB.Txn(false), localID)
	if n == nil {
		return 0, false
	}
	return n.NodeID, true
}

// Edge looks up an edge by token.
// Returns nil if the edge doesn't exist.
func (s *Store) Edge(token Token) *Edge {
	return getEdge(s.memDB.Txn(false), token).Copy()
}

// EdgeByInterface maps a remote (node id, interface id) pair to the edge the
// interface belongs to.
// Returns nil if no edge uses the interface.
func (s *Store) EdgeByInterface(nodeID, ifaceID int32) *Edge {
	txn := s.memDB.Txn(false)
	obj, err := txn.First(tableInterface, indexID, interfaceKey(nodeID, ifaceID))
	if err != nil || obj == nil {
		return nil
	}
	return getEdge(txn, obj.(interfaceEntry).Token).Copy()
}

// EdgesOf returns the edges attached to the node with the given local id.
func (s *Store) EdgesOf(localID int) []*Edge {
	edges := edgesOf(s.memDB.Txn(false), localID)
	for i, e := range edges {
		edges[i] = e.Copy()
	}
	return edges
}

// Nodes returns every node, ordered by local id.
func (s *Store) Nodes() []*Node {
	nodes, _ := s.Snapshot()
	return nodes
}

// Edges returns every edge, ordered by token.
func (s *Store) Edges() []*Edge {
	_, edges := s.Snapshot()
	return edges
}

// Snapshot returns every node and edge as seen by a single read
// transaction.
func (s *Store) Snapshot() ([]*Node, []*Edge) {
	txn := s.memDB.Txn(false)

	nodes := []*Node{}
	if it, err := txn.Get(tableNode, indexID); err == nil {
		for obj := it.Next(); obj != nil; obj = it.Next() {
			nodes = append(nodes, withInterfaces(txn, obj.(nodeEntry).Node))
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].LocalID < nodes[j].LocalID
	})

	edges := []*Edge{}
	if it, err := txn.Get(tableEdge, indexID); err == nil {
		for obj := it.Next(); obj != nil; obj = it.Next() {
			edges = append(edges, obj.(edgeEntry).Edge.Copy())
		}
	}
	sortEdges(edges)
	return nodes, edges
}
