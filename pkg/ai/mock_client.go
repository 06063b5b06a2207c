// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

// NewMock answers without any network call. It is used when no upstream
// credential is configured so the service still runs end to end.
func NewMock() ChatClient { return &mockClient{} }

func (m *mockClient) Live() bool { return false }

func (m *mockClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			prompt = msg.Content
		}
	}
	crop := fieldValue(prompt, "Crop Type:")
	soil := fieldValue(prompt, "Soil Type:")
	season := fieldValue(prompt, "Season:")

	return fmt.Sprintf(`**Fertilizer plan for %s on %s soil (%s)** (offline sample)

1. **NPK ratio:** start with a balanced 10-10-10 basal dose.
2. **Timing:** apply half at sowing, the rest split over two top dressings.
3. **Dosage:** 200-300 kg/hectare depending on soil test results.
4. **Soil care:** add organic matter and avoid waterlogging.`, crop, strings.ToLower(soil), season), nil
}

func fieldValue(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	return "your crop"
}
