package planner

import (
	"context"
	"time"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/observability"
	"github.com/kbukum/sporeplan/schedule"
)

// WithTracing wraps a Scheduler with OpenTelemetry span creation.
// Each projection creates a span named observability.SpanSchedule.
func WithTracing(s Scheduler) Scheduler {
	return &tracingScheduler{inner: s}
}

type tracingScheduler struct {
	inner Scheduler
}

func (s *tracingScheduler) Policy() string { return s.inner.Policy() }

func (s *tracingScheduler) Schedule(ctx context.Context, steps []schedule.Step, start time.Time) ([]schedule.Entry, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSchedule)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrPolicy, s.inner.Policy())
	observability.SetSpanAttribute(ctx, observability.AttrStepCount, len(steps))

	entries, err := s.inner.Schedule(ctx, steps, start)
	if err != nil {
		observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(errorCode(err)))
		observability.SetSpanError(ctx, err)
	}
	return entries, err
}

// WithMetrics wraps a Scheduler with metric recording.
// Records run count, duration, step count and errors.
func WithMetrics(s Scheduler, metrics *observability.Metrics) Scheduler {
	return &metricsScheduler{inner: s, metrics: metrics}
}

type metricsScheduler struct {
	inner   Scheduler
	metrics *observability.Metrics
}

func (s *metricsScheduler) Policy() string { return s.inner.Policy() }

func (s *metricsScheduler) Schedule(ctx context.Context, steps []schedule.Step, start time.Time) ([]schedule.Entry, error) {
	began := time.Now()
	entries, err := s.inner.Schedule(ctx, steps, start)
	duration := time.Since(began)

	status := "ok"
	if err != nil {
		status = "error"
		s.metrics.RecordError(ctx, string(errorCode(err)), "scheduler")
	}
	s.metrics.RecordSchedule(ctx, s.inner.Policy(), status, len(entries), duration)

	return entries, err
}

// WithLogging wraps a Scheduler with projection logging.
// Logs: policy, step count, duration, and success/error status.
func WithLogging(s Scheduler, log *logger.Logger) Scheduler {
	return &loggingScheduler{inner: s, log: log}
}

type loggingScheduler struct {
	inner Scheduler
	log   *logger.Logger
}

func (s *loggingScheduler) Policy() string { return s.inner.Policy() }

func (s *loggingScheduler) Schedule(ctx context.Context, steps []schedule.Step, start time.Time) ([]schedule.Entry, error) {
	began := time.Now()
	entries, err := s.inner.Schedule(ctx, steps, start)
	duration := time.Since(began)

	fields := map[string]interface{}{
		logger.FieldPolicy:   s.inner.Policy(),
		"steps":              len(steps),
		logger.FieldDuration: duration.Milliseconds(),
	}

	if err != nil {
		fields[logger.FieldError] = err.Error()
		s.log.Error("schedule projection failed", fields)
	} else {
		s.log.Debug("schedule projected", fields)
	}

	return entries, err
}

func errorCode(err error) errors.ErrorCode {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Code
	}
	return errors.ErrCodeInternal
}
