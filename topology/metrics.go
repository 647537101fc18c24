package topology

import (
	metrics "github.com/docker/go-metrics"
)

var (
	ns = metrics.NewNamespace("coretk", "topology", nil)

	// operationLatency is labeled by the store operation name.
	operationLatency = ns.NewLabeledTimer("operation_latency", "Latency of topology store operations.", "operation")
	nodesGauge       = ns.NewGauge("nodes", "Number of nodes in the topology store.", metrics.Total)
	edgesGauge       = ns.NewGauge("edges", "Number of edges in the topology store.", metrics.Total)
)

func init() {
	metrics.Register(ns)
}
