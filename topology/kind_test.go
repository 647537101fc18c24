package topology

import (
	"testing"

	"github.com/coreemu/coretk/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"switch", "hub", "wlan", "rj45", "tunnel"} {
		k, err := ParseKind(name, "ignored")
		require.NoError(t, err, name)
		assert.False(t, k.IsNetworkLayer(), name)
		assert.Empty(t, k.Model())
		assert.Equal(t, name, k.String())
	}

	for _, name := range NetworkModels {
		k, err := ParseKind(name, "")
		require.NoError(t, err, name)
		assert.True(t, k.IsNetworkLayer(), name)
		assert.Equal(t, name, k.Model())
		assert.Equal(t, api.NodeTypeDefault, k.NodeType())
	}

	k, err := ParseKind("default", "mdr")
	require.NoError(t, err)
	assert.Equal(t, NetworkLayer("mdr"), k)

	k, err = ParseKind("wlan", "")
	require.NoError(t, err)
	assert.Equal(t, api.NodeTypeWirelessLAN, k.NodeType())

	_, err = ParseKind("satellite", "")
	assert.True(t, IsErrUnknownKind(err))
	_, err = ParseKind("Switch", "")
	assert.True(t, IsErrUnknownKind(err), "kind names are case sensitive")
}

func TestKindOf(t *testing.T) {
	k, err := KindOf(api.NodeTypeDefault, "host")
	require.NoError(t, err)
	assert.True(t, k.IsNetworkLayer())
	assert.Equal(t, "host", k.Model())

	k, err = KindOf(api.NodeTypeRJ45, "")
	require.NoError(t, err)
	assert.Equal(t, LinkLayer(MediumRJ45), k)

	_, err = KindOf(api.NodeTypePeerToPeer, "")
	assert.True(t, IsErrUnknownKind(err))
	assert.Contains(t, err.Error(), "PEER_TO_PEER")
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{LinkLayer(MediumWLAN), NetworkLayer("mdr"), NetworkLayer("")} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var out Kind
		require.NoError(t, out.UnmarshalText(text))
		assert.Equal(t, k, out)
	}
}
