// Prometheus instrumentation for a KnuthBendix engine.

package knuthbendix

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes an engine's rule counters as Prometheus metrics. It
// reads only the engine's atomic counters, so it is safe to register and
// scrape while Run is in progress.
type Collector struct {
	kb *KnuthBendix

	active   *prometheus.Desc
	inactive *prometheus.Desc
	pending  *prometheus.Desc
	total    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a prometheus.Collector for kb. The metrics are
// labelled with the engine's rewriter kind.
func NewCollector(kb *KnuthBendix) *Collector {
	labels := prometheus.Labels{"rewriter": kb.kind.String()}
	return &Collector{
		kb: kb,
		active: prometheus.NewDesc(
			"knuthbendix_active_rules",
			"Number of active rewriting rules.",
			nil, labels),
		inactive: prometheus.NewDesc(
			"knuthbendix_inactive_rules",
			"Number of deactivated rules held in the pool for reuse.",
			nil, labels),
		pending: prometheus.NewDesc(
			"knuthbendix_pending_rules",
			"Number of candidate rules awaiting admission.",
			nil, labels),
		total: prometheus.NewDesc(
			"knuthbendix_rules_created_total",
			"Total number of rules ever created, including recycled ones.",
			nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.active
	ch <- c.inactive
	ch <- c.pending
	ch <- c.total
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(c.kb.NumActiveRules()))
	ch <- prometheus.MustNewConstMetric(c.inactive, prometheus.GaugeValue, float64(c.kb.NumInactiveRules()))
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(c.kb.NumPendingRules()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.CounterValue, float64(c.kb.TotalRules()))
}
