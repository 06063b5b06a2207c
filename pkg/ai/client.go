// pkg/ai/client.go

package ai

import (
	"context"
	"errors"
	"fmt"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single-turn chat completion. An empty Model means the
// client's configured model.
type ChatRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
	// Live reports whether calls reach a real provider rather than the mock.
	Live() bool
}

var ErrNoChoices = errors.New("upstream returned no choices")

// UpstreamError is a non-2xx answer from the provider, kept verbatim so the
// caller can relay both status and message.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}
