package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Quote match kinds.
const (
	MatchExact   = "exact"
	MatchClosest = "closest"
)

// CatalogMetrics tracks pricing activity. A nil *CatalogMetrics is a no-op.
type CatalogMetrics struct {
	quotes        *prometheus.CounterVec
	markupUpdates prometheus.Counter
	markup        prometheus.Gauge
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_quotes_total",
		Help: "Price quotes served, by how the size was matched.",
	}, []string{"match"})
	markupUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_markup_updates_total",
		Help: "Global markup changes.",
	})
	markup := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_global_markup_percentage",
		Help: "Global markup percentage after the last change.",
	})
	reg.MustRegister(quotes, markupUpdates, markup)
	return &CatalogMetrics{
		quotes:        quotes,
		markupUpdates: markupUpdates,
		markup:        markup,
	}
}

// IncQuote counts a served quote.
func (m *CatalogMetrics) IncQuote(match string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(match)).Inc()
}

// MarkupChanged records a new global markup.
func (m *CatalogMetrics) MarkupChanged(pct float64) {
	if m == nil || m.markupUpdates == nil {
		return
	}
	m.markupUpdates.Inc()
	m.markup.Set(pct)
}
