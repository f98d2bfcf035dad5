package healthpoll

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/matttelliott/bookmarker-ai/internal/events"
	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/health"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
	"github.com/matttelliott/bookmarker-ai/internal/metrics"
	"github.com/matttelliott/bookmarker-ai/internal/observability"
)

// DefaultInterval matches the frontend badge refresh rate.
const DefaultInterval = 30 * time.Second

const (
	BadgeConnected    = "API Connected"
	BadgeDisconnected = "API Disconnected"
)

// Indicator polls the API on a fixed interval and holds the latest status.
// A tick that starts while a previous request is still running cancels that
// request, so only the newest response is ever applied. Sinks receive
// transitions in the order they were decided, even when ticks overlap.
type Indicator struct {
	client   *Client
	interval time.Duration
	sinks    []Sink
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	status   foundation.Option[health.Status]
	observed bool
	lastErr  error
	gen      uint64
	cancel   context.CancelFunc

	// delivered closes once the most recently decided transition has
	// reached every sink.
	delivered chan struct{}

	scheduler gocron.Scheduler
}

// IndicatorOption configures an Indicator.
type IndicatorOption func(*Indicator)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) IndicatorOption {
	return func(i *Indicator) {
		if d > 0 {
			i.interval = d
		}
	}
}

// WithSinks registers transition receivers.
func WithSinks(sinks ...Sink) IndicatorOption {
	return func(i *Indicator) { i.sinks = append(i.sinks, sinks...) }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) IndicatorOption {
	return func(i *Indicator) { i.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) IndicatorOption {
	return func(i *Indicator) { i.logger = l }
}

// WithClock overrides the transition timestamp source.
func WithClock(now func() time.Time) IndicatorOption {
	return func(i *Indicator) { i.now = now }
}

// NewIndicator returns a stopped indicator. It reports disconnected until the
// first poll completes.
func NewIndicator(client *Client, opts ...IndicatorOption) *Indicator {
	ind := &Indicator{
		client:   client,
		interval: DefaultInterval,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(ind)
	}
	return ind
}

// Start schedules polling with an immediate first tick. Polling stops when
// ctx is canceled or Stop is called.
func (ind *Indicator) Start(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to create gocron scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(ind.interval),
		gocron.NewTask(func() { ind.Tick(ctx) }),
		gocron.WithName("health-poll"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to schedule health poll").Build()
	}

	ind.mu.Lock()
	ind.scheduler = s
	ind.mu.Unlock()

	ind.logger.Info("Starting health poller",
		logfields.URL(ind.client.URL()),
		slog.Duration("interval", ind.interval))
	s.Start()
	return nil
}

// Stop cancels any in-flight request and shuts the scheduler down.
func (ind *Indicator) Stop() error {
	ind.mu.Lock()
	s := ind.scheduler
	ind.scheduler = nil
	if ind.cancel != nil {
		ind.cancel()
		ind.cancel = nil
	}
	ind.mu.Unlock()

	if s == nil {
		return nil
	}
	ind.logger.Info("Stopping health poller")
	if err := s.Shutdown(); err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to stop health poller").Build()
	}
	return nil
}

// Tick performs one poll. It is what the scheduler runs; callers may also use
// it directly for a single check.
func (ind *Indicator) Tick(parent context.Context) {
	if parent.Err() != nil {
		return
	}
	ind.mu.Lock()
	if ind.cancel != nil {
		ind.cancel()
	}
	ind.gen++
	gen := ind.gen
	parent = observability.WithPollID(parent, strconv.FormatUint(gen, 10))
	ctx, cancel := context.WithCancel(parent)
	ind.cancel = cancel
	ind.mu.Unlock()
	defer cancel()

	start := time.Now()
	res := ind.client.Fetch(ctx)
	ind.recorder.ObservePollDuration(time.Since(start))

	ind.mu.Lock()
	if gen != ind.gen || parent.Err() != nil {
		ind.mu.Unlock()
		ind.recorder.IncPollResult(metrics.PollCanceled)
		return
	}
	ind.cancel = nil

	status, err := foundation.ToTuple(res)
	next := foundation.None[health.Status]()
	if err == nil {
		next = foundation.Some(status)
	}
	changed := !ind.observed || next.IsSome() != ind.status.IsSome()
	ind.status = next
	ind.observed = true
	ind.lastErr = err

	var (
		t          events.Transition
		prev, done chan struct{}
	)
	if changed {
		t = ind.transition(status, err)
		prev, done = ind.delivered, make(chan struct{})
		ind.delivered = done
	}
	connected := next.IsSome()
	ind.recorder.SetAPIConnected(connected)
	ind.mu.Unlock()

	if connected {
		ind.recorder.IncPollResult(metrics.PollConnected)
	} else {
		ind.recorder.IncPollResult(metrics.PollDisconnected)
		observability.Log(parent, ind.logger, slog.LevelDebug, "Health poll failed",
			logfields.URL(ind.client.URL()), logfields.Error(err))
	}

	if changed {
		if prev != nil {
			<-prev
		}
		ind.emit(parent, t)
		close(done)
	}
}

func (ind *Indicator) transition(status health.Status, err error) events.Transition {
	if err != nil {
		return events.NewTransition(false, "", err.Error(), ind.now())
	}
	return events.NewTransition(true, status.Service, status.Status, ind.now())
}

func (ind *Indicator) emit(ctx context.Context, t events.Transition) {
	ind.recorder.IncTransition(t.Connected)
	observability.Log(ctx, ind.logger, slog.LevelInfo, "API connection state changed",
		logfields.Connected(t.Connected),
		logfields.Service(t.Service),
		slog.String("detail", t.Detail))

	for _, sink := range ind.sinks {
		if err := sink.Append(ctx, t); err != nil {
			observability.Log(ctx, ind.logger, slog.LevelWarn, "Failed to deliver transition", logfields.Error(err))
		}
	}
}

// Status returns the latest health payload, or None while disconnected.
func (ind *Indicator) Status() foundation.Option[health.Status] {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.status
}

// Connected reports whether the latest poll succeeded.
func (ind *Indicator) Connected() bool {
	return ind.Status().IsSome()
}

// LastError returns the failure of the latest poll, if any.
func (ind *Indicator) LastError() error {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.lastErr
}

// Badge renders the connection badge text.
func (ind *Indicator) Badge() string {
	return Badge(ind.Status())
}

// Badge renders the badge text for a status.
func Badge(status foundation.Option[health.Status]) string {
	if status.IsSome() {
		return BadgeConnected
	}
	return BadgeDisconnected
}
