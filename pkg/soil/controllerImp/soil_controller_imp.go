package controllerImp

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrismart/pkg/soil"
	"agrismart/pkg/soil/service"
)

type SoilCtrl struct {
	svc service.SoilService
	log *zap.Logger
}

func New(svc service.SoilService, log *zap.Logger) *SoilCtrl { return &SoilCtrl{svc: svc, log: log} }

// Analyze handles POST /api/analyze.
func (h *SoilCtrl) Analyze(c echo.Context) error {
	var form soil.SampleForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	out, err := h.svc.Analyze(c.Request().Context(), form)
	if err != nil {
		var verr *soil.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "fields": verr.Fields})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "analysis cancelled"})
		default:
			h.log.Error("analyze", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "analysis failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"result":   out.Result,
		"sample":   out.Sample,
		"recordId": out.RecordID,
	})
}
