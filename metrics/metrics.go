// Package metrics records how playback strings were produced, both as
// Prometheus series for a single run and as statistics persisted across runs.
package metrics

import (
	"io"

	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Episode results.
const (
	ResultOK       = "ok"
	ResultFallback = "fallback"
	ResultOmitted  = "omitted"
)

// Metrics holds the composition series.
type Metrics struct {
	Titles      prometheus.Counter
	Episodes    *prometheus.CounterVec
	Fallbacks   prometheus.Counter
	Omitted     prometheus.Counter
	SuccessRate prometheus.Histogram
}

// New creates and registers composition metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Titles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constant.App,
			Subsystem: "playback",
			Name:      "titles_total",
			Help:      "Titles composed into a playback string.",
		}),
		Episodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.App,
			Subsystem: "playback",
			Name:      "episodes_total",
			Help:      "Episodes composed, by dispatched shape and result.",
		}, []string{"shape", "result"}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constant.App,
			Subsystem: "playback",
			Name:      "fallbacks_total",
			Help:      "Episodes given a synthesized fallback URL.",
		}),
		Omitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constant.App,
			Subsystem: "playback",
			Name:      "omitted_total",
			Help:      "Failed episodes left out of the playback string.",
		}),
		SuccessRate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constant.App,
			Subsystem: "playback",
			Name:      "success_ratio",
			Help:      "Per-title ratio of derived episodes to total episodes.",
			Buckets:   []float64{0, 0.25, 0.5, 0.75, 0.9, 0.99, 1},
		}),
	}

	reg.MustRegister(
		m.Titles,
		m.Episodes,
		m.Fallbacks,
		m.Omitted,
		m.SuccessRate,
	)

	return m
}

// ObserveComposition implements playurl.Observer.
func (m *Metrics) ObserveComposition(_ int, outcomes []resolve.Outcome, c playurl.Composition) {
	m.Titles.Inc()
	m.Fallbacks.Add(float64(c.Fallbacks))
	m.Omitted.Add(float64(c.Omitted))
	m.SuccessRate.Observe(c.SuccessRate())

	for _, o := range outcomes {
		m.Episodes.WithLabelValues(o.Shape.String(), result(o, c)).Inc()
	}
}

// result tells what happened to one outcome. Fallback is title-wide, so a
// failed episode was synthesized exactly when its composition used fallbacks.
func result(o resolve.Outcome, c playurl.Composition) string {
	switch {
	case o.OK():
		return ResultOK
	case c.Fallbacks > 0:
		return ResultFallback
	default:
		return ResultOmitted
	}
}

// Write dumps every gathered family in the Prometheus text format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}

	return nil
}
