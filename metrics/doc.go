// Package metrics exports exploration counters to Prometheus.
//
// Collector implements explorer.Recorder. Register it on any
// prometheus.Registerer and pass it to explorer.WithRecorder:
//
//	reg := prometheus.NewRegistry()
//	col, err := metrics.New(reg)
//	...
//	e, err := explorer.New(space, origin, explorer.WithRecorder(col))
//
// Exported series (namespace "haze", subsystem "explorer"):
//
//	sections_expanded_total          counter
//	doorways_total{state}            counter, state = open | wall
//	degree_class_total{class}        counter, class = sealed | dead_end | hallway | three_way | four_way | other
//	retraced_total                   counter
//	layers_total                     counter
//	layer_batch_size                 histogram
//	frontier_size                    gauge
//	depth                            gauge, deepest layer reached
//	consistency_violations_total     counter
//
// Collector is safe for concurrent use; several explorers may share one.
package metrics
