// Package metrics provides the metrics hooks of the index runner.
//
// Components depend on the Recorder interface and default to NoopRecorder,
// so metrics collection needs no nil checks at call sites:
//
//	svc := build.NewService(provider, cfg) // NoopRecorder
//	svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry;
// HTTPHandler serves that registry. The watch command exposes it when
// metrics.enabled is set.
package metrics
