// Package analytics records product events ("analysis_completed",
// "advisory_requested", ...) through an injected EventSink.
package analytics

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agrismart/pkg/session"
)

// EventSink receives named events with free-form parameters.
type EventSink interface {
	Track(ctx context.Context, name string, params map[string]any) error
}

// Event names emitted by the services.
const (
	EventAnalysisCompleted = "analysis_completed"
	EventAdvisoryRequested = "advisory_requested"
	EventAdvisoryFailed    = "advisory_failed"
	EventDosageCalculated  = "dosage_calculated"
	EventContactSubmitted  = "contact_submitted"
)

type Nop struct{}

func (Nop) Track(context.Context, string, map[string]any) error { return nil }

// LogSink writes each event as a structured log line.
type LogSink struct{ log *zap.Logger }

func NewLogSink(log *zap.Logger) *LogSink { return &LogSink{log: log} }

func (s *LogSink) Track(ctx context.Context, name string, params map[string]any) error {
	s.log.Info("event",
		zap.String("name", name),
		zap.String("session", session.From(ctx)),
		zap.Any("params", params),
	)
	return nil
}

// Multi fans an event out to every sink. All sinks are attempted; their
// errors are joined.
type Multi []EventSink

func (m Multi) Track(ctx context.Context, name string, params map[string]any) error {
	var errs []error
	for _, s := range m {
		if err := s.Track(ctx, name, params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
