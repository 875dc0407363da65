package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/haze/explorer"
)

const (
	namespace = "haze"
	subsystem = "explorer"
)

// ErrRegister is returned when a series cannot be registered.
var ErrRegister = errors.New("metrics: register collector")

// degreeClasses maps an open doorway count to its label.
var degreeClasses = [...]string{"sealed", "dead_end", "hallway", "three_way", "four_way"}

// Collector records explorer events as Prometheus series.
type Collector struct {
	sections   prometheus.Counter
	doorways   *prometheus.CounterVec
	degrees    *prometheus.CounterVec
	retraced   prometheus.Counter
	layers     prometheus.Counter
	batch      prometheus.Histogram
	frontier   prometheus.Gauge
	depth      prometheus.Gauge
	violations prometheus.Counter
}

var _ explorer.Recorder = (*Collector)(nil)

// New creates a Collector and registers its series on reg.
// A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		sections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sections_expanded_total",
			Help:      "Sections newly expanded into the known set",
		}),
		doorways: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "doorways_total",
			Help:      "Doorways of expanded sections by state",
		}, []string{"state"}),
		degrees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "degree_class_total",
			Help:      "Expanded sections by open doorway count",
		}, []string{"class"}),
		retraced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retraced_total",
			Help:      "Expansion requests for already known sections",
		}),
		layers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "layers_total",
			Help:      "Breadth-first layers explored",
		}),
		batch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "layer_batch_size",
			Help:      "Sections expanded per breadth-first layer",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		frontier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frontier_size",
			Help:      "Discovered but unexpanded sections after the last layer",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "depth",
			Help:      "Deepest breadth-first layer reached",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "consistency_violations_total",
			Help:      "Doorways that failed the symmetry check",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.sections, c.doorways, c.degrees, c.retraced, c.layers,
		c.batch, c.frontier, c.depth, c.violations,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}

	return c, nil
}

// DegreeClass returns the degree_class_total label for degree.
func DegreeClass(degree int) string {
	if degree >= 0 && degree < len(degreeClasses) {
		return degreeClasses[degree]
	}

	return "other"
}

// SectionExpanded implements explorer.Recorder.
func (c *Collector) SectionExpanded(degree, walls int) {
	c.sections.Inc()
	c.doorways.WithLabelValues("open").Add(float64(degree))
	c.doorways.WithLabelValues("wall").Add(float64(walls))
	c.degrees.WithLabelValues(DegreeClass(degree)).Inc()
}

// Retraced implements explorer.Recorder.
func (c *Collector) Retraced() { c.retraced.Inc() }

// LayerExplored implements explorer.Recorder.
func (c *Collector) LayerExplored(depth, batch, frontier int) {
	c.layers.Inc()
	c.batch.Observe(float64(batch))
	c.frontier.Set(float64(frontier))
	c.depth.Set(float64(depth))
}

// Violation implements explorer.Recorder.
func (c *Collector) Violation() { c.violations.Inc() }
