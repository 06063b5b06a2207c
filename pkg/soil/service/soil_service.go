package service

import (
	"context"

	"agrismart/pkg/soil"
)

type Outcome struct {
	Sample   soil.SoilSample           `json:"sample"`
	Result   soil.RecommendationResult `json:"result"`
	RecordID string                    `json:"recordId,omitempty"`
}

type SoilService interface {
	Analyze(ctx context.Context, form soil.SampleForm) (*Outcome, error)
}
