// Package metrics registers the Prometheus instruments for the catalog.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters for store and enrichment activity.
type Metrics struct {
	RecordsCreated  *prometheus.CounterVec // labels: kind={continent,country,city}
	RecordsDeleted  *prometheus.CounterVec // labels: kind
	DeleteConflicts *prometheus.CounterVec // labels: kind
	EnrichLookups   *prometheus.CounterVec // labels: source={countries,weather}, outcome={success,miss,failure}
}

// New creates and registers all metrics with the default Prometheus registry.
func New() *Metrics {
	m := build()
	prometheus.MustRegister(
		m.RecordsCreated,
		m.RecordsDeleted,
		m.DeleteConflicts,
		m.EnrichLookups,
	)
	return m
}

// NewForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewForTesting() *Metrics {
	return build()
}

func build() *Metrics {
	return &Metrics{
		RecordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geocatalog",
			Name:      "records_created_total",
			Help:      "Records created, by entity kind.",
		}, []string{"kind"}),
		RecordsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geocatalog",
			Name:      "records_deleted_total",
			Help:      "Records deleted, by entity kind.",
		}, []string{"kind"}),
		DeleteConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geocatalog",
			Name:      "delete_conflicts_total",
			Help:      "Deletes rejected because dependent rows exist, by entity kind.",
		}, []string{"kind"}),
		EnrichLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geocatalog",
			Name:      "enrichment_lookups_total",
			Help:      "Enrichment gateway lookups by source and outcome.",
		}, []string{"source", "outcome"}),
	}
}
