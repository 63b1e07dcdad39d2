package rewrite

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts recipe runs. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	touched  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recast_recipe_runs_total",
			Help: "Recipe applications by outcome status.",
		}, []string{"recipe", "status"}),
		touched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recast_nodes_touched_total",
			Help: "Nodes replaced by recipe visitors.",
		}, []string{"recipe"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recast_recipe_duration_seconds",
			Help:    "Time spent applying a recipe to one unit.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"recipe"}),
	}
	for _, c := range []prometheus.Collector{m.runs, m.touched, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(o.Recipe, string(o.Status)).Inc()
	if len(o.Touched) > 0 {
		m.touched.WithLabelValues(o.Recipe).Add(float64(len(o.Touched)))
	}
	m.duration.WithLabelValues(o.Recipe).Observe(o.Duration.Seconds())
}

func (m *Metrics) RunsCounter() *prometheus.CounterVec { return m.runs }
