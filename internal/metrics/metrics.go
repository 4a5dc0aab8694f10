// Package metrics declares the Prometheus collectors shared by the stores, the
// persistence synchronizers and the remote clients.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "careconnect"

var (
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Intents applied to a store, by store, intent and whether state changed.",
		},
		[]string{"store", "intent", "changed"},
	)

	SnapshotSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_saves_total",
			Help:      "Full collection snapshots written to a durable slot, by slot and result.",
		},
		[]string{"slot", "result"},
	)

	HydrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hydrations_total",
			Help:      "Mount-time slot reads, by slot and outcome.",
		},
		[]string{"slot", "outcome"},
	)

	RemoteFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fetches_total",
			Help:      "Calls to remote endpoints, by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	RecordsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently held by a store.",
		},
		[]string{"store"},
	)
)
