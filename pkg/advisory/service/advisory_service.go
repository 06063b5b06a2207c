package service

import (
	"context"

	"agrismart/pkg/advisory"
)

type Response struct {
	Success        bool             `json:"success"`
	Recommendation string           `json:"recommendation"`
	InputData      advisory.Request `json:"inputData"`
	RecordID       string           `json:"recordId,omitempty"`
}

type AdvisoryService interface {
	Recommend(ctx context.Context, req advisory.Request) (*Response, error)
	// Configured reports whether a real upstream credential is in use.
	Configured() bool
}
