// Package metrics holds the Prometheus instruments for PassTicket generation.
//
// genptkt is a one-shot process, so nothing is scraped. Instead the registry
// is written in the node exporter textfile format when a path is configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds only this tool's instruments, without Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Generation results.
const (
	ResultIssued      = "issued"
	ResultRefused     = "refused"
	ResultDenied      = "denied"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

var (
	// Generations counts generate requests by result and application.
	Generations = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "passticket_generations_total",
		Help: "PassTicket generate requests by result",
	}, []string{"result", "application"})

	// AuthorityStatus counts SAF return codes seen from the security authority.
	AuthorityStatus = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "passticket_authority_status_total",
		Help: "SAF return codes returned by the security authority",
	}, []string{"saf_rc"})

	// CallDuration observes the time spent inside the security authority call.
	CallDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "passticket_authority_call_duration_seconds",
		Help:    "Duration of the security authority call",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	})

	// PolicyDecisions counts pre-flight policy decisions.
	PolicyDecisions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "passticket_policy_decisions_total",
		Help: "Pre-flight policy decisions",
	}, []string{"decision"})
)

// WriteTextfile writes the registry to path for the node exporter textfile
// collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
