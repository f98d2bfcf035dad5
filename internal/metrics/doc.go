// Package metrics provides the observability hooks for the API server and the
// health poller.
//
// Components hold a Recorder and default to NoopRecorder, so no nil checks are
// needed at call sites:
//
//	type Indicator struct {
//	    recorder metrics.Recorder
//	}
//
// When monitoring.metrics.enabled is set, serve and watch swap in a
// PrometheusRecorder bound to a registry that HTTPHandler exposes on
// monitoring.metrics.path.
package metrics
