package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/backplan/internal/metrics"
	"github.com/alexanderramin/backplan/internal/scheduler"
)

type options struct {
	logger     zerolog.Logger
	recorder   *metrics.Recorder
	observers  []UseCaseObserver
	thresholds scheduler.Thresholds
	policy     scheduler.ChecklistPolicy
	now        func() time.Time
}

// Option configures a service.
type Option func(*options)

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder counts tolerated lookup failures and plan output on rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(o *options) { o.recorder = rec }
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

func WithThresholds(t scheduler.Thresholds) Option {
	return func(o *options) { o.thresholds = t }
}

func WithChecklistPolicy(p scheduler.ChecklistPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:     zerolog.Nop(),
		thresholds: scheduler.DefaultThresholds(),
		policy:     scheduler.DefaultChecklistPolicy(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) observer() UseCaseObserver {
	return useCaseObserverOrNoop(o.observers)
}

func (o options) lookupFailed(source string) {
	if o.recorder != nil {
		o.recorder.RecordLookupFailure(source)
	}
}
