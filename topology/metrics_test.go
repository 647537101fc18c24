package topology

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, name string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		require.NotEmpty(t, family.GetMetric())
		return family.GetMetric()[0].GetGauge().GetValue()
	}
	t.Fatalf("metric %s is not registered", name)
	return 0
}

func TestGauges(t *testing.T) {
	s := newTestStore(t)

	a := addNode(t, s, "router")
	b := addNode(t, s, "host")
	_, err := s.AddEdge(a.LocalID, b.LocalID)
	require.NoError(t, err)
	assert.Equal(t, float64(2), gaugeValue(t, "coretk_topology_nodes_total"))
	assert.Equal(t, float64(1), gaugeValue(t, "coretk_topology_edges_total"))

	require.NoError(t, s.DeleteNode(b.LocalID))
	assert.Equal(t, float64(1), gaugeValue(t, "coretk_topology_nodes_total"))
	assert.Equal(t, float64(0), gaugeValue(t, "coretk_topology_edges_total"))
}
