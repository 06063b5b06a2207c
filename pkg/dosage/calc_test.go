package dosage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_AllDeficient(t *testing.T) {
	plan, err := Calculate(Input{FieldSizeAcres: 1, CropType: "rice"})
	require.NoError(t, err)

	require.Len(t, plan.Items, 3)
	assert.Equal(t, LineItem{Fertilizer: "Urea (46-0-0)", AmountKg: 236, Cost: 5900}, plan.Items[0])
	assert.Equal(t, LineItem{Fertilizer: "DAP (18-46-0)", AmountKg: 118, Cost: 3540}, plan.Items[1])
	assert.Equal(t, LineItem{Fertilizer: "MOP (0-0-60)", AmountKg: 557, Cost: 11140}, plan.Items[2])
	assert.Equal(t, 20580, plan.TotalCost)
	assert.Empty(t, plan.Message)
}

func TestCalculate_ScalesWithFieldSize(t *testing.T) {
	plan, err := Calculate(Input{
		Nutrients:      SoilNutrients{Nitrogen: 40, Phosphorus: 25, Potassium: 200},
		FieldSizeAcres: 2,
		CropType:       "Wheat",
	})
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Urea (46-0-0)", plan.Items[0].Fertilizer)
	assert.Equal(t, 95, plan.Items[0].AmountKg)
	assert.Equal(t, 2375, plan.TotalCost)
}

func TestCalculate_TargetsMetIsEmptyNotError(t *testing.T) {
	plan, err := Calculate(Input{
		Nutrients:      SoilNutrients{Nitrogen: 50, Phosphorus: 25, Potassium: 200},
		FieldSizeAcres: 3,
		CropType:       "corn",
	})
	require.NoError(t, err)
	assert.Empty(t, plan.Items)
	assert.Zero(t, plan.TotalCost)
	assert.Equal(t, EmptyMessage, plan.Message)
}

func TestCalculate_TinyDeficitRoundsUp(t *testing.T) {
	plan, err := Calculate(Input{
		Nutrients:      SoilNutrients{Nitrogen: 60, Phosphorus: 24.99, Potassium: 250},
		FieldSizeAcres: 1,
		CropType:       "rice",
	})
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, 1, plan.Items[0].AmountKg)
	assert.Equal(t, 30, plan.TotalCost)
}

func TestCalculate_InvalidInput(t *testing.T) {
	_, err := Calculate(Input{FieldSizeAcres: 0, CropType: "rice"})
	assert.ErrorIs(t, err, ErrInvalidFieldSize)

	_, err = Calculate(Input{FieldSizeAcres: math.NaN(), CropType: "rice"})
	assert.ErrorIs(t, err, ErrInvalidFieldSize)

	_, err = Calculate(Input{FieldSizeAcres: 1, CropType: "banana"})
	assert.ErrorIs(t, err, ErrUnknownCrop)

	_, err = Calculate(Input{FieldSizeAcres: 1, CropType: "rice", Nutrients: SoilNutrients{Potassium: math.NaN()}})
	assert.ErrorIs(t, err, ErrInvalidNutrient)

	_, err = Calculate(Input{FieldSizeAcres: 1, CropType: "rice", Nutrients: SoilNutrients{Nitrogen: -1}})
	assert.ErrorIs(t, err, ErrInvalidNutrient)

	// all three nutrients missing on a field too big to price
	plan, err := Calculate(Input{FieldSizeAcres: 1e20, CropType: "rice"})
	assert.ErrorIs(t, err, ErrFieldTooLarge)
	assert.Empty(t, plan.Items)
	assert.Empty(t, plan.Message)

	_, err = Calculate(Input{FieldSizeAcres: 1e15, CropType: "rice"})
	assert.ErrorIs(t, err, ErrFieldTooLarge)
}

func TestCalculate_LargeFieldStaysPositive(t *testing.T) {
	plan, err := Calculate(Input{FieldSizeAcres: 1e9, CropType: "wheat"})
	require.NoError(t, err)
	require.Len(t, plan.Items, 3)
	sum := 0
	for _, it := range plan.Items {
		assert.Positive(t, it.AmountKg)
		assert.Positive(t, it.Cost)
		sum += it.Cost
	}
	assert.Equal(t, sum, plan.TotalCost)
}

func TestCalculate_TotalIsSumAndIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		in := Input{
			Nutrients: SoilNutrients{
				Nitrogen:   r.Float64() * 80,
				Phosphorus: r.Float64() * 50,
				Potassium:  r.Float64() * 300,
			},
			FieldSizeAcres: 0.1 + r.Float64()*20,
			CropType:       Crops[r.Intn(len(Crops))],
		}
		a, err := Calculate(in)
		require.NoError(t, err)
		b, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		sum := 0
		for _, it := range a.Items {
			sum += it.Cost
			assert.Positive(t, it.AmountKg)
		}
		assert.Equal(t, sum, a.TotalCost)

		if in.Nutrients.Nitrogen >= 50 {
			for _, it := range a.Items {
				assert.NotEqual(t, "Urea (46-0-0)", it.Fertilizer)
			}
		}
	}
}
