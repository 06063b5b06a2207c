// Package growth tracks where a planting is in its crop's stage table and
// simulates field weather for advisory notifications.
package growth

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

var ErrUnknownCrop = errors.New("unknown crop")

// Stage is active while the day count is at or below Days.
type Stage struct {
	Name        string `json:"stage"`
	Days        int    `json:"days"`
	Description string `json:"description"`
}

// Catalog is the per-crop stage table. It is never mutated after construction.
type Catalog struct {
	crops map[string][]Stage
}

// NewCatalog validates and copies the stage tables: every crop needs at
// least one stage and strictly increasing positive thresholds.
func NewCatalog(tables map[string][]Stage) (*Catalog, error) {
	if len(tables) == 0 {
		return nil, errors.New("catalog has no crops")
	}
	c := &Catalog{crops: make(map[string][]Stage, len(tables))}
	for crop, stages := range tables {
		key := normCrop(crop)
		if key == "" {
			return nil, errors.New("catalog has a crop without a name")
		}
		if len(stages) == 0 {
			return nil, fmt.Errorf("crop %q has no stages", crop)
		}
		prev := 0
		for i, s := range stages {
			if s.Days <= prev {
				return nil, fmt.Errorf("crop %q stage %d (%s): day threshold %d must exceed %d", crop, i, s.Name, s.Days, prev)
			}
			prev = s.Days
		}
		c.crops[key] = append([]Stage(nil), stages...)
	}
	return c, nil
}

// DefaultCatalog returns the built-in tomato and rice tables.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(map[string][]Stage{
		"tomato": {
			{Name: "Germination", Days: 7, Description: "Seeds sprouting"},
			{Name: "Seedling", Days: 21, Description: "True leaves appear"},
			{Name: "Vegetative", Days: 45, Description: "Rapid growth"},
			{Name: "Flowering", Days: 65, Description: "Flowers forming"},
			{Name: "Fruiting", Days: 85, Description: "Fruits developing"},
		},
		"rice": {
			{Name: "Germination", Days: 5, Description: "Seeds sprouting"},
			{Name: "Seedling", Days: 20, Description: "Young plants"},
			{Name: "Transplanting", Days: 25, Description: "Moving to field"},
			{Name: "Tillering", Days: 50, Description: "Multiple shoots"},
			{Name: "Panicle Formation", Days: 75, Description: "Grain heads forming"},
			{Name: "Maturity", Days: 120, Description: "Grains fully developed"},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Crops() []string {
	out := make([]string, 0, len(c.crops))
	for k := range c.crops {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Stages returns a copy of the crop's table.
func (c *Catalog) Stages(crop string) ([]Stage, bool) {
	s, ok := c.crops[normCrop(crop)]
	if !ok {
		return nil, false
	}
	return append([]Stage(nil), s...), true
}

// Plan is what the user selected. A nil PlantingDate means "not set yet".
type Plan struct {
	Crop         string
	PlantingDate *time.Time
}

type Status struct {
	Crop            string  `json:"crop"`
	CurrentDay      int     `json:"currentDay"`
	CurrentStage    *Stage  `json:"currentStage"`
	StageIndex      int     `json:"stageIndex"` // -1 when no stage is selected
	ProgressPercent float64 `json:"progressPercent"`
}

// Compute derives the status of p at now. Days are counted from the
// planting date to the start of now's calendar day in the planting date's
// location, rounded up and never negative. Past the last threshold the
// final stage stays active.
func (c *Catalog) Compute(p Plan, now time.Time) (Status, error) {
	stages, ok := c.crops[normCrop(p.Crop)]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownCrop, p.Crop)
	}
	st := Status{Crop: normCrop(p.Crop), StageIndex: -1}
	if p.PlantingDate == nil {
		return st, nil
	}

	loc := p.PlantingDate.Location()
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	days := math.Ceil(today.Sub(*p.PlantingDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	st.CurrentDay = int(days)

	idx := len(stages) - 1
	for i, s := range stages {
		if st.CurrentDay <= s.Days {
			idx = i
			break
		}
	}
	stage := stages[idx]
	st.CurrentStage = &stage
	st.StageIndex = idx

	total := float64(stages[len(stages)-1].Days)
	st.ProgressPercent = math.Min(100, math.Max(0, float64(st.CurrentDay)/total*100))
	return st, nil
}

func normCrop(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
