package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rks_nodes_created_total",
		Help: "Nodes created",
	})

	nodesPatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rks_nodes_patched_total",
		Help: "Node patches appended",
	})

	nodesDemoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rks_nodes_demoted_total",
		Help: "Patches where a requested Active status was rewritten to Build",
	})

	contradictionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rks_contradictions_created_total",
		Help: "Contradictions recorded",
	})

	runsLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rks_runs_logged_total",
		Help: "Run logs recorded",
	})
)
