package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/metrics"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// Outcome classifies the event for metrics: success, validation_error or error.
func (e UseCaseEvent) Outcome() string {
	switch {
	case e.Success:
		return "success"
	case app.IsValidation(e.Err):
		return "validation_error"
	default:
		return "error"
	}
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger zerolog.Logger
}

// NewLogUseCaseObserver writes use-case events to logger. Failures are logged
// at error level, validation failures at warn.
func NewLogUseCaseObserver(logger zerolog.Logger) UseCaseObserver {
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	var ev *zerolog.Event
	switch event.Outcome() {
	case "success":
		ev = o.logger.Info()
	case "validation_error":
		ev = o.logger.Warn()
	default:
		ev = o.logger.Error()
	}
	ev = ev.Str("use_case", event.Name).
		Int64("duration_ms", event.Duration.Milliseconds()).
		Bool("success", event.Success).
		Fields(event.Fields)
	if event.Err != nil {
		ev = ev.Err(event.Err)
	}
	ev.Msg("service_use_case")
}

type metricsUseCaseObserver struct {
	recorder *metrics.Recorder
}

// NewMetricsUseCaseObserver counts use-case executions on rec.
func NewMetricsUseCaseObserver(rec *metrics.Recorder) UseCaseObserver {
	if rec == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{recorder: rec}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.recorder.ObserveUseCase(event.Name, event.Duration, event.Outcome())
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}
