package serviceImp

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agrismart/entities"
	"agrismart/pkg/analytics"
	"agrismart/pkg/record/repository"
	"agrismart/pkg/session"
	"agrismart/pkg/soil"
	"agrismart/pkg/soil/service"
)

type SoilSvc struct {
	store repository.RecordStore
	sink  analytics.EventSink
	log   *zap.Logger
	delay time.Duration
}

// New wires the analyzer. delay is the cosmetic pause before the result is
// returned; zero disables it.
func New(store repository.RecordStore, sink analytics.EventSink, log *zap.Logger, delay time.Duration) *SoilSvc {
	return &SoilSvc{store: store, sink: sink, log: log, delay: delay}
}

var _ service.SoilService = (*SoilSvc)(nil)

func (s *SoilSvc) Analyze(ctx context.Context, form soil.SampleForm) (*service.Outcome, error) {
	sample, err := soil.ParseSample(form)
	if err != nil {
		return nil, err
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	res := soil.Analyze(sample)
	out := &service.Outcome{Sample: sample, Result: res}

	// persistence and analytics are best effort; the result is already final
	id, err := s.store.Save(ctx, &entities.SavedRecommendation{
		Kind:      entities.KindAnalysis,
		SessionID: session.From(ctx),
		Input:     sample.Fields(),
		Output:    res.Fields(),
	})
	if err != nil {
		s.log.Warn("save analysis", zap.Error(err))
	} else {
		out.RecordID = id
	}
	if err := s.sink.Track(ctx, analytics.EventAnalysisCompleted, map[string]any{
		"npkRatio": res.NPKRatio,
		"soilType": string(sample.SoilType),
	}); err != nil {
		s.log.Warn("track analysis", zap.Error(err))
	}
	return out, nil
}
