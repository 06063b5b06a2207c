package soil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FormValue accepts either a JSON string or a JSON number, the way an HTML
// form or a typed client would send a reading.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	default:
		*v = FormValue(b)
	}
	return nil
}

// SampleForm is the raw analyzer form before parsing.
type SampleForm struct {
	Temperature FormValue `json:"temperature"`
	Humidity    FormValue `json:"humidity"`
	Moisture    FormValue `json:"moisture"`
	SoilType    FormValue `json:"soilType"`
	Nitrogen    FormValue `json:"nitrogen"`
	Phosphorus  FormValue `json:"phosphorus"`
	Potassium   FormValue `json:"potassium"`
}

// ValidationError lists every form field that failed to parse, keyed by
// the form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "invalid soil sample: " + strings.Join(parts, "; ")
}

// FieldNames returns the offending field names in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseSample converts the text form into a typed sample. Empty, non-numeric
// and non-finite readings are rejected rather than left to fail comparisons.
func ParseSample(f SampleForm) (SoilSample, error) {
	bad := map[string]string{}
	num := func(name string, v FormValue) float64 {
		s := strings.TrimSpace(string(v))
		if s == "" {
			bad[name] = "required"
			return 0
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			bad[name] = fmt.Sprintf("not a number: %q", s)
			return 0
		}
		return x
	}

	out := SoilSample{
		Temperature: num("temperature", f.Temperature),
		Humidity:    num("humidity", f.Humidity),
		Moisture:    num("moisture", f.Moisture),
		Nitrogen:    num("nitrogen", f.Nitrogen),
		Phosphorus:  num("phosphorus", f.Phosphorus),
		Potassium:   num("potassium", f.Potassium),
	}

	st := SoilType(strings.ToLower(strings.TrimSpace(string(f.SoilType))))
	switch {
	case st == "":
		bad["soilType"] = "required"
	case !st.Valid():
		bad["soilType"] = fmt.Sprintf("unknown soil type %q", string(f.SoilType))
	default:
		out.SoilType = st
	}

	if len(bad) > 0 {
		return SoilSample{}, &ValidationError{Fields: bad}
	}
	return out, nil
}
