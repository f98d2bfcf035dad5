package metrics

import "time"

// PollLabel enumerates health poll outcomes for counters.
type PollLabel string

const (
	PollConnected    PollLabel = "connected"
	PollDisconnected PollLabel = "disconnected"
	PollCanceled     PollLabel = "canceled"
)

// Recorder defines observability hooks for HTTP traffic and health polling.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
	IncRateLimited(route string)
	ObservePollDuration(d time.Duration)
	IncPollResult(result PollLabel)
	SetAPIConnected(connected bool)
	IncTransition(connected bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (NoopRecorder) IncRateLimited(string)                                {}
func (NoopRecorder) ObservePollDuration(time.Duration)                    {}
func (NoopRecorder) IncPollResult(PollLabel)                              {}
func (NoopRecorder) SetAPIConnected(bool)                                 {}
func (NoopRecorder) IncTransition(bool)                                   {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
