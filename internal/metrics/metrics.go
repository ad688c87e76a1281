// Package metrics exposes Prometheus instrumentation for the import and
// reporting pipeline. Collectors are registered on the default registry;
// the hosting layer decides whether and where to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ImportsTotal counts CSV import attempts per symbol and outcome.
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradenexus",
		Subsystem: "import",
		Name:      "imports_total",
		Help:      "Number of trade log imports by symbol and status",
	},
	[]string{"symbol", "status"},
)

// ImportedRows counts ledger records written by successful imports.
var ImportedRows = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradenexus",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Number of ledger records written by successful imports",
	},
	[]string{"symbol"},
)

// ImportDuration observes end-to-end import latency (parse, build, replace).
var ImportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradenexus",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "End-to-end trade log import duration in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	},
	[]string{"symbol"},
)

// DashboardLoadDuration observes the wall-clock time of a full dashboard
// load across all symbols.
var DashboardLoadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "tradenexus",
		Subsystem: "reporting",
		Name:      "dashboard_load_duration_seconds",
		Help:      "Duration of a full multi-symbol dashboard load in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
)

// SymbolLoadFailures counts per-symbol load failures that were isolated
// from the rest of the dashboard.
var SymbolLoadFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradenexus",
		Subsystem: "reporting",
		Name:      "symbol_load_failures_total",
		Help:      "Number of isolated per-symbol dashboard load failures",
	},
	[]string{"symbol"},
)
