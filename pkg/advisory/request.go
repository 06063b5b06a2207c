// Package advisory relays fertilizer questions to a remote chat model and
// cleans the answer for display.
package advisory

import (
	"strings"
)

// Request is the body of POST /api/fertilizer-recommend.
type Request struct {
	SoilType  string `json:"soilType"`
	CropType  string `json:"cropType"`
	Season    string `json:"season"`
	Location  string `json:"location,omitempty"`
	Nutrients string `json:"nutrients,omitempty"`
}

var Seasons = []string{"Kharif", "Rabi", "Zaid", "Year-round"}

type ValidationError struct {
	Missing []string
	Invalid string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Invalid
}

// Validate trims every field and canonicalises the season spelling.
func (r Request) Validate() (Request, error) {
	r.SoilType = strings.TrimSpace(r.SoilType)
	r.CropType = strings.TrimSpace(r.CropType)
	r.Season = strings.TrimSpace(r.Season)
	r.Location = strings.TrimSpace(r.Location)
	r.Nutrients = strings.TrimSpace(r.Nutrients)

	var missing []string
	if r.SoilType == "" {
		missing = append(missing, "soilType")
	}
	if r.CropType == "" {
		missing = append(missing, "cropType")
	}
	if r.Season == "" {
		missing = append(missing, "season")
	}
	if len(missing) > 0 {
		return r, &ValidationError{Missing: missing}
	}

	for _, s := range Seasons {
		if strings.EqualFold(s, r.Season) {
			r.Season = s
			return r, nil
		}
	}
	return r, &ValidationError{Invalid: "Invalid season " + `"` + r.Season + `"` + ": must be one of " + strings.Join(Seasons, ", ")}
}

// Fields flattens the request for storage.
func (r Request) Fields() map[string]any {
	m := map[string]any{
		"soilType": r.SoilType,
		"cropType": r.CropType,
		"season":   r.Season,
	}
	if r.Location != "" {
		m["location"] = r.Location
	}
	if r.Nutrients != "" {
		m["nutrients"] = r.Nutrients
	}
	return m
}
