package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrismart/pkg/analytics"
	"agrismart/pkg/dosage"
)

type DosageCtrl struct {
	sink analytics.EventSink
	log  *zap.Logger
}

func New(sink analytics.EventSink, log *zap.Logger) *DosageCtrl {
	return &DosageCtrl{sink: sink, log: log}
}

// Calculate handles POST /api/dosage.
func (h *DosageCtrl) Calculate(c echo.Context) error {
	var in dosage.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	plan, err := dosage.Calculate(in)
	if err != nil {
		switch {
		case errors.Is(err, dosage.ErrInvalidFieldSize),
			errors.Is(err, dosage.ErrUnknownCrop),
			errors.Is(err, dosage.ErrInvalidNutrient),
			errors.Is(err, dosage.ErrFieldTooLarge):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dosage calculation failed"})
	}

	if err := h.sink.Track(c.Request().Context(), analytics.EventDosageCalculated, map[string]any{
		"cropType":  in.CropType,
		"items":     len(plan.Items),
		"totalCost": plan.TotalCost,
	}); err != nil {
		h.log.Warn("track dosage", zap.Error(err))
	}
	return c.JSON(http.StatusOK, plan)
}
