package serviceImp

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agrismart/entities"
	"agrismart/pkg/advisory"
	"agrismart/pkg/advisory/service"
	"agrismart/pkg/ai"
	"agrismart/pkg/analytics"
	"agrismart/pkg/record/repository"
	"agrismart/pkg/session"
)

type AdvisorySvc struct {
	llm   ai.ChatClient
	store repository.RecordStore
	sink  analytics.EventSink
	log   *zap.Logger
}

func New(llm ai.ChatClient, store repository.RecordStore, sink analytics.EventSink, log *zap.Logger) *AdvisorySvc {
	return &AdvisorySvc{llm: llm, store: store, sink: sink, log: log}
}

var _ service.AdvisoryService = (*AdvisorySvc)(nil)

func (s *AdvisorySvc) Configured() bool { return s.llm.Live() }

func (s *AdvisorySvc) Recommend(ctx context.Context, in advisory.Request) (*service.Response, error) {
	req, err := in.Validate()
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Complete(ctx, advisory.ChatRequest(req))
	if err != nil {
		params := map[string]any{"cropType": req.CropType, "season": req.Season, "reason": "internal"}
		var up *ai.UpstreamError
		if errors.As(err, &up) {
			params["reason"] = "upstream"
			params["status"] = up.Status
		}
		s.track(ctx, analytics.EventAdvisoryFailed, params)
		return nil, err
	}

	out := &service.Response{
		Success:        true,
		Recommendation: advisory.Clean(text),
		InputData:      in,
	}

	id, err := s.store.Save(ctx, &entities.SavedRecommendation{
		Kind:      entities.KindAdvisory,
		SessionID: session.From(ctx),
		Input:     req.Fields(),
		Output:    map[string]any{"recommendation": out.Recommendation},
	})
	if err != nil {
		s.log.Warn("save advisory", zap.Error(err))
	} else {
		out.RecordID = id
	}
	s.track(ctx, analytics.EventAdvisoryRequested, map[string]any{
		"soilType": req.SoilType,
		"cropType": req.CropType,
		"season":   req.Season,
	})
	return out, nil
}

func (s *AdvisorySvc) track(ctx context.Context, name string, params map[string]any) {
	if err := s.sink.Track(ctx, name, params); err != nil {
		s.log.Warn("track advisory", zap.String("event", name), zap.Error(err))
	}
}
