package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionState(t *testing.T) {
	for name, expected := range map[string]SessionState{
		"definition":   SessionStateDefinition,
		"RUNTIME":      SessionStateRuntime,
		" Datacollect": SessionStateDatacollect,
		"shutdown":     SessionStateShutdown,
	} {
		state, err := ParseSessionState(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, state)
	}

	_, err := ParseSessionState("running")
	assert.Error(t, err)
	assert.True(t, IsErrInvalidState(err))

	_, err = ParseSessionState("")
	assert.True(t, IsErrInvalidState(err))
}

func TestCodecStartSession(t *testing.T) {
	req := &StartSessionRequest{
		SessionID: 3,
		Nodes: []*Node{
			{ID: 1, Name: "n1", Model: "router", Position: &Position{X: 10, Y: 20}},
			{ID: 2, Name: "wlan2", Type: NodeTypeWirelessLAN},
		},
		Links: []*Link{{
			NodeOneID:    1,
			NodeTwoID:    2,
			Type:         LinkTypeWired,
			InterfaceOne: &Interface{ID: 0, Name: "eth0", IP4: "10.0.0.1", IP4Mask: 24},
		}},
		WlanConfigs: []*WlanConfig{{NodeID: 2, Config: map[string]string{"range": "275"}}},
	}

	var codec Codec
	data, err := codec.Marshal(req)
	require.NoError(t, err)

	var out StartSessionRequest
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, int32(3), out.SessionID)
	require.Len(t, out.Nodes, 2)
	assert.Equal(t, NodeTypeWirelessLAN, out.Nodes[1].Type)
	assert.Equal(t, float32(20), out.Nodes[0].Position.Y)
	require.Len(t, out.Links, 1)
	assert.Equal(t, "10.0.0.1", out.Links[0].InterfaceOne.IP4)
	assert.Nil(t, out.Links[0].InterfaceTwo)
	assert.Equal(t, "275", out.WlanConfigs[0].Config["range"])

	_, err = codec.Marshal("not a message")
	assert.Error(t, err)
}

func TestNodeCopy(t *testing.T) {
	n := &Node{ID: 4, Position: &Position{X: 1, Y: 2}, Services: []string{"zebra"}}
	c := n.Copy()
	c.Position.X = 50
	c.Services[0] = "OSPFv2"
	assert.Equal(t, float32(1), n.Position.X)
	assert.Equal(t, "zebra", n.Services[0])
	assert.Nil(t, (*Node)(nil).Copy())
}
