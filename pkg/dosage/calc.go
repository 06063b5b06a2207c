// Package dosage turns soil nutrient readings and a field size into a
// shopping list of compound fertilizers.
package dosage

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidFieldSize = errors.New("field size must be a positive number of acres")
	ErrUnknownCrop      = errors.New("unknown crop type")
	ErrInvalidNutrient  = errors.New("nutrient levels must be finite and non-negative")
	ErrFieldTooLarge    = errors.New("field size too large to price")
)

// EmptyMessage is shown when every nutrient already meets its target.
const EmptyMessage = "Soil nutrients meet all targets; no fertilizer needed."

// Crops accepted by the calculator.
var Crops = []string{"rice", "wheat", "corn"}

type SoilNutrients struct {
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
}

type Input struct {
	Nutrients      SoilNutrients `json:"nutrients"`
	FieldSizeAcres float64       `json:"fieldSizeAcres"`
	CropType       string        `json:"cropType"`
}

type LineItem struct {
	Fertilizer string `json:"fertilizer"`
	AmountKg   int    `json:"amountKg"`
	Cost       int    `json:"cost"`
}

type Plan struct {
	Items     []LineItem `json:"items"`
	TotalCost int        `json:"totalCost"`
	Message   string     `json:"message,omitempty"`
}

// compound describes one nutrient target and the product used to reach it.
type compound struct {
	name       string
	target     float64 // ppm
	factor     float64 // ppm·acre → kg nutrient
	percent    float64 // nutrient share of the compound, %
	pricePerKg int
	level      func(SoilNutrients) float64
}

var compounds = []compound{
	{name: "Urea (46-0-0)", target: 50, factor: 2.17, percent: 46, pricePerKg: 25,
		level: func(n SoilNutrients) float64 { return n.Nitrogen }},
	{name: "DAP (18-46-0)", target: 25, factor: 2.17, percent: 46, pricePerKg: 30,
		level: func(n SoilNutrients) float64 { return n.Phosphorus }},
	{name: "MOP (0-0-60)", target: 200, factor: 1.67, percent: 60, pricePerKg: 20,
		level: func(n SoilNutrients) float64 { return n.Potassium }},
}

// Calculate is pure: identical inputs give identical plans.
func Calculate(in Input) (Plan, error) {
	if !(in.FieldSizeAcres > 0) || math.IsInf(in.FieldSizeAcres, 0) {
		return Plan{}, ErrInvalidFieldSize
	}
	if !validCrop(in.CropType) {
		return Plan{}, ErrUnknownCrop
	}
	for _, c := range compounds {
		if v := c.level(in.Nutrients); math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Plan{}, ErrInvalidNutrient
		}
	}

	plan := Plan{Items: []LineItem{}}
	for _, c := range compounds {
		cur := c.level(in.Nutrients)
		if cur >= c.target {
			continue
		}
		maxKg := math.MaxInt / c.pricePerKg
		raw := math.Ceil((c.target - cur) * in.FieldSizeAcres * c.factor / c.percent * 100)
		if raw >= float64(maxKg) {
			return Plan{}, ErrFieldTooLarge
		}
		kg := int(raw)
		if kg <= 0 {
			continue
		}
		item := LineItem{Fertilizer: c.name, AmountKg: kg, Cost: kg * c.pricePerKg}
		if plan.TotalCost > math.MaxInt-item.Cost {
			return Plan{}, ErrFieldTooLarge
		}
		plan.Items = append(plan.Items, item)
		plan.TotalCost += item.Cost
	}
	if len(plan.Items) == 0 {
		plan.Message = EmptyMessage
	}
	return plan, nil
}

func validCrop(c string) bool {
	c = strings.ToLower(strings.TrimSpace(c))
	for _, k := range Crops {
		if k == c {
			return true
		}
	}
	return false
}
