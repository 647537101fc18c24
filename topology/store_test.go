package topology

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/internal/ipam"
	events "github.com/docker/go-events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	s := NewStore(context.Background(), nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func addNode(t *testing.T, s *Store, kind string) *Node {
	n, err := s.AddNode(kind, "", Position{X: 10, Y: 20}, "")
	require.NoError(t, err)
	return n
}

func interfaceCount(s *Store) int {
	total := 0
	for _, n := range s.Nodes() {
		total += len(n.Interfaces)
	}
	return total
}

func TestAddNode(t *testing.T) {
	s := newTestStore(t)

	n := addNode(t, s, "router")
	assert.Equal(t, 1, n.LocalID)
	assert.Equal(t, int32(1), n.NodeID)
	assert.Equal(t, "n1", n.Name)
	assert.Equal(t, "router", n.Kind.Model())

	sw, err := s.AddNode("switch", "", Position{}, "sw")
	require.NoError(t, err)
	assert.Equal(t, int32(2), sw.NodeID)
	assert.Equal(t, "sw", sw.Name)

	_, err = s.AddNode("toaster", "", Position{}, "")
	assert.True(t, IsErrUnknownKind(err))
	assert.Len(t, s.Nodes(), 2)
	assert.Equal(t, 3, s.PeekNodeID(), "a rejected kind must not consume an id")

	local, ok := s.LocalID(2)
	require.True(t, ok)
	assert.Equal(t, sw.LocalID, local)
	remote, ok := s.RemoteID(n.LocalID)
	require.True(t, ok)
	assert.Equal(t, int32(1), remote)
}

func TestAddEdgeNetworkLayer(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "host")

	e, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	require.NotNil(t, e.Interface1)
	require.NotNil(t, e.Interface2)
	assert.Equal(t, "10.0.0.1", e.Interface1.IP4)
	assert.Equal(t, "10.0.0.2", e.Interface2.IP4)
	assert.Equal(t, int32(24), e.Interface1.IP4Mask)
	assert.Equal(t, "eth0", e.Interface1.Name)
	assert.Equal(t, 2, interfaceCount(s))

	c := addNode(t, s, "PC")
	e2, err := s.AddEdge(c.LocalID, a.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1", e2.Interface1.IP4)
	assert.Equal(t, "10.0.1.2", e2.Interface2.IP4)
	assert.Equal(t, int32(1), e2.Interface2.ID, "second interface of a")
	assert.Equal(t, "eth1", e2.Interface2.Name)

	ifaces := s.Node(a.LocalID).Interfaces
	require.Len(t, ifaces, 2)
	assert.Equal(t, int32(0), ifaces[0].ID)
	assert.Equal(t, int32(1), ifaces[1].ID)

	found := s.EdgeByInterface(a.NodeID, 1)
	require.NotNil(t, found)
	assert.Equal(t, NewToken(a.LocalID, c.LocalID), found.Token)
	assert.Nil(t, s.EdgeByInterface(a.NodeID, 7))
}

func TestAddEdgeDuplicate(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "router")

	_, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)

	_, err = s.AddEdge(b.LocalID, a.LocalID)
	require.Error(t, err)
	assert.True(t, IsErrDuplicateEdge(err))
	assert.Len(t, s.Edges(), 1)
	assert.Equal(t, 2, interfaceCount(s))

	_, err = s.AddEdge(a.LocalID, a.LocalID)
	assert.Equal(t, ErrSameEndpoint, err)

	_, err = s.AddEdge(a.LocalID, 99)
	assert.True(t, IsErrUnknownNode(err))
	assert.Len(t, s.Edges(), 1)
}

func TestAddEdgeLinkLayer(t *testing.T) {
	s := newTestStore(t)
	sw1 := addNode(t, s, "switch")
	sw2 := addNode(t, s, "switch")
	r := addNode(t, s, "router")

	e, err := s.AddEdge(sw1.LocalID, sw2.LocalID)
	require.NoError(t, err)
	assert.Nil(t, e.Interface1)
	assert.Nil(t, e.Interface2)
	assert.Equal(t, 0, interfaceCount(s))

	// the link layer edge still consumed 10.0.0.0/24
	e, err = s.AddEdge(r.LocalID, sw1.LocalID)
	require.NoError(t, err)
	require.NotNil(t, e.Interface1)
	assert.Nil(t, e.Interface2)
	assert.Equal(t, "10.0.1.1", e.Interface1.IP4)
	assert.Empty(t, s.Node(sw1.LocalID).Interfaces)
}

func TestDeleteNodeReusesID(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "router")
	c := addNode(t, s, "router")
	assert.Equal(t, int32(2), b.NodeID)

	_, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	_, err = s.AddEdge(b.LocalID, c.LocalID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNode(b.LocalID))
	assert.Nil(t, s.Node(b.LocalID))
	assert.Empty(t, s.Edges())
	assert.Empty(t, s.Node(a.LocalID).Interfaces, "peer interfaces go with the edge")
	assert.Empty(t, s.Node(c.LocalID).Interfaces)
	assert.Equal(t, []int{2}, s.ReusableNodeIDs())

	d := addNode(t, s, "host")
	assert.Equal(t, int32(2), d.NodeID)
	assert.NotEqual(t, b.LocalID, d.LocalID, "local ids are never reused")

	err = s.DeleteNode(b.LocalID)
	require.Error(t, err)
	assert.True(t, IsErrUnknownNode(err))
	assert.Len(t, s.Nodes(), 3)
}

func TestDeleteEdge(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "host")

	e, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	assert.Len(t, s.Nodes(), 2)
	assert.Equal(t, 2, interfaceCount(s))

	deleted, err := s.DeleteEdge(e.Token)
	require.NoError(t, err)
	assert.Equal(t, e.Token, deleted.Token)
	assert.Equal(t, 0, interfaceCount(s))
	assert.Nil(t, s.EdgeByInterface(a.NodeID, 0))

	_, err = s.DeleteEdge(e.Token)
	assert.True(t, IsErrUnknownEdge(err))

	// interface ids are reused once the edge is gone
	e, err = s.AddEdge(b.LocalID, a.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "eth0", e.Interface1.Name)
}

func TestUpdatePosition(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")

	require.NoError(t, s.UpdatePosition(a.LocalID, 300, 150))
	assert.Equal(t, Position{X: 300, Y: 150}, s.Node(a.LocalID).Position)
	assert.True(t, IsErrUnknownNode(s.UpdatePosition(42, 0, 0)))
}

func TestJoinHydration(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Reset(5))

	for _, remote := range []*api.Node{
		{ID: 1, Name: "n1", Model: "router"},
		{ID: 3, Name: "n3", Model: "host"},
		{ID: 7, Name: "switch7", Type: api.NodeTypeSwitch},
	} {
		n, err := s.AddPreexistingNode(Position{X: 1, Y: 2}, remote)
		require.NoError(t, err)
		assert.True(t, n.Preexisting)
		assert.Equal(t, int32(5), n.SessionID)
	}

	_, err := s.AddPreexistingNode(Position{}, &api.Node{ID: 9, Type: api.NodeTypePeerToPeer})
	assert.True(t, IsErrUnknownKind(err))
	_, err = s.AddPreexistingNode(Position{}, &api.Node{ID: 3})
	assert.True(t, IsErrNodeExists(err))

	e, err := s.AddPreexistingEdge(&api.Link{
		NodeOneID:    1,
		NodeTwoID:    3,
		Type:         api.LinkTypeWired,
		InterfaceOne: &api.Interface{ID: 0, Name: "eth0", IP4: "10.0.0.1", IP4Mask: 24},
		InterfaceTwo: &api.Interface{ID: 0, Name: "eth0", IP4: "10.0.0.2", IP4Mask: 24},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), e.Interface1.NodeID)
	_, err = s.AddPreexistingEdge(&api.Link{NodeOneID: 3, NodeTwoID: 8})
	assert.True(t, IsErrUnknownNode(err))

	s.RebuildReusePool()
	assert.Equal(t, 8, s.NextNodeID())
	assert.Equal(t, []int{2, 4, 5, 6}, s.ReusableNodeIDs())

	s.RebuildReusePool()
	assert.Equal(t, []int{2, 4, 5, 6}, s.ReusableNodeIDs(), "rebuild is idempotent")

	// locally added edges skip the subnet used by the session
	n, err := s.AddNode("router", "", Position{}, "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), n.NodeID)
	local1, _ := s.LocalID(1)
	e, err = s.AddEdge(local1, n.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1", e.Interface1.IP4)
	assert.Equal(t, "eth1", e.Interface1.Name)
}

func TestResetClearsStore(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "router")
	_, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)

	require.NoError(t, s.Reset(2))
	assert.Empty(t, s.Nodes())
	assert.Empty(t, s.Edges())
	assert.Equal(t, 1, s.PeekNodeID())
	assert.Equal(t, int32(2), s.SessionID())

	n := addNode(t, s, "router")
	assert.Equal(t, 1, n.LocalID)
}

func TestEndToEnd(t *testing.T) {
	s := newTestStore(t)
	a := addNode(t, s, "router")
	b := addNode(t, s, "host")

	e, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	assert.Len(t, s.Nodes(), 2)
	assert.Len(t, s.Edges(), 1)

	var addrs []string
	for _, n := range s.Nodes() {
		for _, iface := range n.Interfaces {
			addrs = append(addrs, iface.IP4+"/24")
		}
	}
	assert.ElementsMatch(t, []string{"10.0.0.1/24", "10.0.0.2/24"}, addrs)

	_, err = s.DeleteEdge(e.Token)
	require.NoError(t, err)
	assert.Empty(t, s.Node(a.LocalID).Interfaces)
	assert.Empty(t, s.Node(b.LocalID).Interfaces)
}

func nextEvent(t *testing.T, c chan events.Event) events.Event {
	select {
	case ev := <-c:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for store event")
	}
	return nil
}

func TestStoreEvents(t *testing.T) {
	s := newTestStore(t)
	c, cancel := s.Queue().Watch()
	defer cancel()

	a := addNode(t, s, "router")
	b := addNode(t, s, "switch")
	_, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	_, err = s.AddEdge(a.LocalID, b.LocalID)
	require.Error(t, err)
	require.NoError(t, s.UpdatePosition(b.LocalID, 5, 5))
	require.NoError(t, s.DeleteNode(a.LocalID))

	assert.Equal(t, a.LocalID, nextEvent(t, c).(EventAddNode).Node.LocalID)
	assert.Equal(t, b.LocalID, nextEvent(t, c).(EventAddNode).Node.LocalID)
	added := nextEvent(t, c).(EventAddEdge)
	assert.NotNil(t, added.Edge.Interface1)
	moved := nextEvent(t, c).(EventMoveNode)
	assert.Equal(t, float64(5), moved.Node.Position.X)
	assert.Equal(t, added.Edge.Token, nextEvent(t, c).(EventDeleteEdge).Edge.Token)
	assert.Equal(t, a.LocalID, nextEvent(t, c).(EventDeleteNode).Node.LocalID)
}

func TestAddEdgeExhausted(t *testing.T) {
	addrs, err := ipam.New(netip.MustParsePrefix("10.0.0.0/24"), 24)
	require.NoError(t, err)
	s := NewStore(context.Background(), addrs)
	t.Cleanup(func() { s.Close() })

	r := addNode(t, s, "router")
	h1 := addNode(t, s, "host")
	h2 := addNode(t, s, "host")
	_, err = s.AddEdge(r.LocalID, h1.LocalID)
	require.NoError(t, err)

	_, err = s.AddEdge(r.LocalID, h2.LocalID)
	require.Error(t, err)
	assert.True(t, ipam.IsErrAddressSpaceExhausted(err))
	assert.Len(t, s.Edges(), 1)
	assert.Equal(t, 2, interfaceCount(s))
	assert.Len(t, s.Node(r.LocalID).Interfaces, 1)
	assert.Empty(t, s.Node(h2.LocalID).Interfaces)
}

func TestDeleteLastEdgeReturnsSubnet(t *testing.T) {
	s := newTestStore(t)
	r := addNode(t, s, "router")
	h1 := addNode(t, s, "host")
	h2 := addNode(t, s, "host")

	e1, err := s.AddEdge(r.LocalID, h1.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", e1.Interface1.IP4)
	e2, err := s.AddEdge(r.LocalID, h2.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1", e2.Interface1.IP4)

	_, err = s.DeleteEdge(e2.Token)
	require.NoError(t, err)
	e3, err := s.AddEdge(h1.LocalID, h2.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1", e3.Interface1.IP4)

	// only the latest edge gives its subnet back
	_, err = s.DeleteEdge(e1.Token)
	require.NoError(t, err)
	e4, err := s.AddEdge(r.LocalID, h2.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.2.1", e4.Interface1.IP4)
}
