package advisory

import (
	"fmt"

	"agrismart/pkg/ai"
)

const (
	SystemInstruction = "You are an expert agricultural advisor specializing in fertilizer recommendations and soil management."

	MaxTokens   = 1000
	Temperature = 0.7

	notSpecified = "Not specified"
)

const promptTemplate = `As an agricultural expert, provide fertilizer recommendations for the following conditions:
Soil Type: %s
Crop Type: %s
Season: %s
Location: %s
Current Nutrient Levels: %s

Please provide:
1. Specific fertilizer recommendations with NPK ratios
2. Application timing and frequency
3. Dosage recommendations per acre/hectare
4. Any additional soil management tips

Format the response in a clear, structured manner suitable for farmers.`

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func RenderPrompt(r Request) string {
	return fmt.Sprintf(promptTemplate, r.SoilType, r.CropType, r.Season,
		orNotSpecified(r.Location), orNotSpecified(r.Nutrients))
}

// ChatRequest builds the single-turn request sent upstream. The model is left
// to the client's configuration.
func ChatRequest(r Request) ai.ChatRequest {
	return ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: RenderPrompt(r)},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
}
