// Package metrics registers the Prometheus counters the mapping pipeline
// increments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsLoaded counts submissions accepted into a canonical record.
	DocumentsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cds",
		Subsystem: "document",
		Name:      "loaded_total",
		Help:      "Documents that passed schema validation and were loaded.",
	})

	// SchemaViolations counts individual schema violations reported across
	// rejected submissions.
	SchemaViolations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cds",
		Subsystem: "document",
		Name:      "schema_violations_total",
		Help:      "Schema violations reported across rejected documents.",
	})

	// RootsPersisted counts root records written to the store by operation.
	RootsPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cds",
		Subsystem: "mapper",
		Name:      "roots_persisted_total",
		Help:      "Root records persisted, labeled by create or update.",
	}, []string{"op"})

	// SectionsPersisted counts section sub-records written to the store.
	SectionsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cds",
		Subsystem: "mapper",
		Name:      "sections_persisted_total",
		Help:      "Section sub-records persisted.",
	})

	// FieldMismatches counts writes to storage fields a node type does not
	// define. These are logged and skipped, never fatal.
	FieldMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cds",
		Subsystem: "mapper",
		Name:      "field_mismatches_total",
		Help:      "Writes skipped because the node type lacks the field.",
	})
)
