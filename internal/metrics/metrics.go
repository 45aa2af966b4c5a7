package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup sources reported by RecordLookupFailure.
const (
	SourceHolidays   = "holidays"
	SourceDirectory  = "directory"
	SourceChecklist  = "checklist"
	SourceLedger     = "workload_ledger"
	SourceAggregator = "workload_source"
)

// Recorder exports use-case telemetry as Prometheus metrics.
type Recorder struct {
	gatherer prometheus.Gatherer

	useCases       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	lookupFailures *prometheus.CounterVec
	conflicts      *prometheus.CounterVec
	plannedTasks   *prometheus.CounterVec
}

// NewRecorder registers the planning metrics on reg. Collectors already
// registered on reg are reused. A nil reg gets a fresh private registry.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	useCases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backplan",
		Name:      "use_cases_total",
		Help:      "Use-case executions by name and outcome",
	}, []string{"use_case", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "backplan",
		Name:      "use_case_duration_seconds",
		Help:      "Use-case execution time",
		Buckets:   prometheus.DefBuckets,
	}, []string{"use_case"})
	lookupFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backplan",
		Name:      "lookup_failures_total",
		Help:      "Failed lookups that were tolerated, by source",
	}, []string{"source"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backplan",
		Name:      "workload_conflicts_total",
		Help:      "Workload warnings emitted, by severity",
	}, []string{"severity"})
	plannedTasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backplan",
		Name:      "planned_tasks_total",
		Help:      "Tasks produced by plan generation, by kind",
	}, []string{"kind"})

	var err error
	if useCases, err = register(reg, useCases); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if lookupFailures, err = register(reg, lookupFailures); err != nil {
		return nil, err
	}
	if conflicts, err = register(reg, conflicts); err != nil {
		return nil, err
	}
	if plannedTasks, err = register(reg, plannedTasks); err != nil {
		return nil, err
	}

	return &Recorder{
		gatherer:       reg,
		useCases:       useCases,
		duration:       duration,
		lookupFailures: lookupFailures,
		conflicts:      conflicts,
		plannedTasks:   plannedTasks,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("registering collector: %w", err)
	}
	return c, nil
}

// ObserveUseCase counts one execution and records its duration.
func (r *Recorder) ObserveUseCase(name string, d time.Duration, outcome string) {
	r.useCases.WithLabelValues(name, outcome).Inc()
	r.duration.WithLabelValues(name).Observe(d.Seconds())
}

func (r *Recorder) RecordLookupFailure(source string) {
	r.lookupFailures.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordConflict(severity string) {
	r.conflicts.WithLabelValues(severity).Inc()
}

func (r *Recorder) RecordPlannedTasks(kind string, n int) {
	if n <= 0 {
		return
	}
	r.plannedTasks.WithLabelValues(kind).Add(float64(n))
}

// WriteTextfile dumps every metric in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.gatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
