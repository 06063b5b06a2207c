// Package soil holds the local fertilizer rule engine: ordered nutrient
// thresholds plus a soil-type adjustment of the application rate.
package soil

type SoilType string

const (
	Loamy  SoilType = "loamy"
	Clay   SoilType = "clay"
	Sandy  SoilType = "sandy"
	Silt   SoilType = "silt"
	Peaty  SoilType = "peaty"
	Chalky SoilType = "chalky"
)

// SoilTypes lists the accepted soil types in form order.
var SoilTypes = []SoilType{Loamy, Clay, Sandy, Silt, Peaty, Chalky}

func (t SoilType) Valid() bool {
	for _, s := range SoilTypes {
		if s == t {
			return true
		}
	}
	return false
}

// SoilSample is one form submission; nutrient values are ppm.
type SoilSample struct {
	Temperature float64  `json:"temperature"` // °C
	Humidity    float64  `json:"humidity"`    // %
	Moisture    float64  `json:"moisture"`    // %
	Nitrogen    float64  `json:"nitrogen"`
	Phosphorus  float64  `json:"phosphorus"`
	Potassium   float64  `json:"potassium"`
	SoilType    SoilType `json:"soilType"`
}

type RecommendationResult struct {
	Recommendation  string `json:"recommendation"`
	NPKRatio        string `json:"npkRatio"`
	ApplicationRate string `json:"applicationRate"`
	AdditionalNotes string `json:"additionalNotes"`
}

// Thresholds in ppm below which a nutrient counts as deficient.
const (
	NitrogenThreshold   = 50.0
	PhosphorusThreshold = 30.0
	PotassiumThreshold  = 100.0
)

const DefaultApplicationRate = "200-300 kg/hectare"

type rule struct {
	deficient      func(SoilSample) bool
	recommendation string
	ratio          string
	notes          string
}

// Evaluated in order; the first deficient nutrient wins.
var rules = []rule{
	{
		deficient:      func(s SoilSample) bool { return s.Nitrogen < NitrogenThreshold },
		recommendation: "Nitrogen-rich fertilizer recommended",
		ratio:          "20-10-10",
		notes:          "Low nitrogen levels detected. Consider organic nitrogen sources.",
	},
	{
		deficient:      func(s SoilSample) bool { return s.Phosphorus < PhosphorusThreshold },
		recommendation: "Phosphorus-enhanced fertilizer",
		ratio:          "10-20-10",
		notes:          "Phosphorus deficiency may affect root development.",
	},
	{
		deficient:      func(s SoilSample) bool { return s.Potassium < PotassiumThreshold },
		recommendation: "Potassium-rich fertilizer",
		ratio:          "10-10-20",
		notes:          "Potassium boost needed for fruit and grain development.",
	},
}

var balanced = rule{
	recommendation: "Balanced NPK fertilizer",
	ratio:          "10-10-10",
	notes:          "Apply during early growing season.",
}

type soilAdjustment struct {
	rate string
	note string
}

var soilAdjustments = map[SoilType]soilAdjustment{
	Sandy: {rate: "150-250 kg/hectare", note: " Sandy soil requires more frequent applications."},
	Clay:  {rate: "250-350 kg/hectare", note: " Clay soil retains nutrients well."},
}

// Analyze maps a parsed sample to exactly one recommendation. It is pure;
// callers are expected to have rejected non-finite readings in ParseSample.
func Analyze(s SoilSample) RecommendationResult {
	chosen := balanced
	for _, r := range rules {
		if r.deficient(s) {
			chosen = r
			break
		}
	}

	out := RecommendationResult{
		Recommendation:  chosen.recommendation,
		NPKRatio:        chosen.ratio,
		ApplicationRate: DefaultApplicationRate,
		AdditionalNotes: chosen.notes,
	}
	if adj, ok := soilAdjustments[s.SoilType]; ok {
		out.ApplicationRate = adj.rate
		out.AdditionalNotes += adj.note
	}
	return out
}

// Fields flattens the sample for storage and analytics payloads.
func (s SoilSample) Fields() map[string]any {
	return map[string]any{
		"temperature": s.Temperature,
		"humidity":    s.Humidity,
		"moisture":    s.Moisture,
		"nitrogen":    s.Nitrogen,
		"phosphorus":  s.Phosphorus,
		"potassium":   s.Potassium,
		"soilType":    string(s.SoilType),
	}
}

func (r RecommendationResult) Fields() map[string]any {
	return map[string]any{
		"recommendation":  r.Recommendation,
		"npkRatio":        r.NPKRatio,
		"applicationRate": r.ApplicationRate,
		"additionalNotes": r.AdditionalNotes,
	}
}
