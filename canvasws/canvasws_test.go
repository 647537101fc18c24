package canvasws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/session"
	"github.com/coreemu/coretk/topology"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readMessage(t *testing.T, c *websocket.Conn) received {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg received
	require.NoError(t, c.ReadJSON(&msg))
	return msg
}

func TestStream(t *testing.T) {
	store := topology.NewStore(context.Background(), nil)
	defer store.Close()
	a, err := store.AddNode("router", "", topology.Position{X: 1, Y: 2}, "")
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(context.Background(), store))
	defer srv.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer c.Close()

	msg := readMessage(t, c)
	require.Equal(t, TypeSnapshot, msg.Type)
	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snapshot))
	require.Len(t, snapshot.Nodes, 1)
	assert.Equal(t, "n1", snapshot.Nodes[0].Name)
	assert.Empty(t, snapshot.Edges)

	b, err := store.AddNode("switch", "", topology.Position{}, "")
	require.NoError(t, err)
	msg = readMessage(t, c)
	require.Equal(t, TypeAddNode, msg.Type)
	var node map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Data, &node))
	assert.Equal(t, "switch", node["kind"])
	assert.Equal(t, float64(2), node["node_id"])

	_, err = store.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	msg = readMessage(t, c)
	require.Equal(t, TypeAddEdge, msg.Type)
	assert.Contains(t, string(msg.Data), `"ip4":"10.0.0.1"`)

	require.NoError(t, store.DeleteNode(b.LocalID))
	assert.Equal(t, TypeDeleteEdge, readMessage(t, c).Type)
	assert.Equal(t, TypeDeleteNode, readMessage(t, c).Type)
}

func TestEncode(t *testing.T) {
	msg, ok := Encode(session.EventSessionState{SessionID: 2, State: api.SessionStateRuntime})
	require.True(t, ok)
	assert.Equal(t, TypeState, msg.Type)
	assert.Equal(t, "runtime", msg.Data.(Snapshot).State)

	msg, ok = Encode(session.EventJoin{SessionID: 2, Nodes: []*topology.Node{{LocalID: 1}}})
	require.True(t, ok)
	assert.Equal(t, TypeJoin, msg.Type)
	assert.Len(t, msg.Data.(Snapshot).Nodes, 1)

	_, ok = Encode("something else")
	assert.False(t, ok)
}
