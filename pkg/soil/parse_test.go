package soil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() SampleForm {
	return SampleForm{
		Temperature: "24.5",
		Humidity:    "60",
		Moisture:    "35",
		SoilType:    "Sandy",
		Nitrogen:    "45.2",
		Phosphorus:  "31",
		Potassium:   "120",
	}
}

func TestParseSample_Valid(t *testing.T) {
	s, err := ParseSample(validForm())
	require.NoError(t, err)
	assert.Equal(t, Sandy, s.SoilType)
	assert.InDelta(t, 45.2, s.Nitrogen, 1e-9)
	assert.InDelta(t, 24.5, s.Temperature, 1e-9)
}

func TestParseSample_RejectsNonNumeric(t *testing.T) {
	f := validForm()
	f.Nitrogen = "lots"
	f.Potassium = "NaN"
	f.Humidity = ""

	_, err := ParseSample(f)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"humidity", "nitrogen", "potassium"}, verr.FieldNames())
	assert.Equal(t, "required", verr.Fields["humidity"])
}

func TestParseSample_RejectsInfinityAndUnknownSoil(t *testing.T) {
	f := validForm()
	f.Phosphorus = "+Inf"
	f.SoilType = "lunar"

	_, err := ParseSample(f)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "phosphorus")
	assert.Contains(t, verr.Fields, "soilType")
	assert.Contains(t, err.Error(), "unknown soil type")
}

func TestSampleForm_AcceptsNumbersAndStrings(t *testing.T) {
	var f SampleForm
	body := `{"temperature":21,"humidity":"55","moisture":null,"soilType":"clay","nitrogen":60.5,"phosphorus":"10","potassium":300}`
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	assert.Equal(t, FormValue("21"), f.Temperature)
	assert.Equal(t, FormValue("55"), f.Humidity)
	assert.Equal(t, FormValue(""), f.Moisture)
	assert.Equal(t, FormValue("60.5"), f.Nitrogen)

	_, err := ParseSample(f)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"moisture"}, verr.FieldNames())
}
