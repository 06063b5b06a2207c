package advisory

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Missing(t *testing.T) {
	_, err := Request{SoilType: "Clay", CropType: " "}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"cropType", "season"}, verr.Missing)
	assert.Equal(t, "Missing required fields: cropType, season", err.Error())
}

func TestValidate_Season(t *testing.T) {
	r, err := Request{SoilType: "Clay", CropType: "Rice", Season: "kharif"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Kharif", r.Season)

	r, err = Request{SoilType: "Clay", CropType: "Rice", Season: "YEAR-ROUND"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Year-round", r.Season)

	_, err = Request{SoilType: "Clay", CropType: "Rice", Season: "Monsoon"}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Missing)
	assert.Contains(t, err.Error(), "Monsoon")
}

func TestRenderPrompt_NotSpecified(t *testing.T) {
	p := RenderPrompt(Request{SoilType: "Clay", CropType: "Rice", Season: "Kharif"})
	assert.Equal(t, 2, strings.Count(p, "Not specified"))
	assert.Contains(t, p, "Soil Type: Clay")
	assert.Contains(t, p, "Location: Not specified")
	assert.Contains(t, p, "Current Nutrient Levels: Not specified")

	p = RenderPrompt(Request{SoilType: "Clay", CropType: "Rice", Season: "Kharif", Location: "Punjab", Nutrients: "N low"})
	assert.NotContains(t, p, "Not specified")
}

func TestChatRequest(t *testing.T) {
	cr := ChatRequest(Request{SoilType: "Loam", CropType: "Wheat", Season: "Rabi"})
	require.Len(t, cr.Messages, 2)
	assert.Equal(t, "system", cr.Messages[0].Role)
	assert.Equal(t, SystemInstruction, cr.Messages[0].Content)
	assert.Equal(t, "user", cr.Messages[1].Role)
	assert.Equal(t, 1000, cr.MaxTokens)
	assert.InDelta(t, 0.7, cr.Temperature, 1e-9)
	assert.Empty(t, cr.Model)
}

func TestClean(t *testing.T) {
	cases := map[string]struct{ in, want string }{
		"bold":       {"Use **Urea** at **50 kg**", "Use Urea at 50 kg"},
		"stray":      {"**Note: split doses", "Note: split doses"},
		"multiline":  {"**Plan\nA**", "Plan\nA"},
		"fence":      {"Intro\n```markdown\n- item\n```\nEnd", "Intro\n- item\nEnd"},
		"inline":     {"run ```x``` now", "run x now"},
		"whitespace": {"  \n text \n\n", "text"},
		"plain":      {"nothing to do", "nothing to do"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out := Clean(tc.in)
			assert.Equal(t, tc.want, out)
			assert.NotContains(t, out, "**")
			assert.NotContains(t, out, "```")
		})
	}
}
