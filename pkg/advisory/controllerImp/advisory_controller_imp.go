package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrismart/pkg/advisory"
	"agrismart/pkg/advisory/service"
	"agrismart/pkg/ai"
)

type AdvisoryCtrl struct {
	svc        service.AdvisoryService
	log        *zap.Logger
	production bool
	now        func() time.Time
}

// New builds the relay handlers. In production, internal error details are
// never attached to responses.
func New(svc service.AdvisoryService, log *zap.Logger, production bool) *AdvisoryCtrl {
	return &AdvisoryCtrl{svc: svc, log: log, production: production, now: time.Now}
}

// Recommend handles POST /api/fertilizer-recommend.
func (h *AdvisoryCtrl) Recommend(c echo.Context) error {
	var req advisory.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	out, err := h.svc.Recommend(c.Request().Context(), req)
	if err == nil {
		return c.JSON(http.StatusOK, out)
	}

	var verr *advisory.ValidationError
	var up *ai.UpstreamError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	case errors.As(err, &up):
		h.log.Warn("advisory upstream", zap.Int("status", up.Status), zap.String("message", up.Message))
		return c.JSON(up.Status, echo.Map{"error": up.Message})
	default:
		h.log.Error("advisory", zap.Error(err))
		body := echo.Map{"error": "Failed to get fertilizer recommendation"}
		if !h.production {
			body["details"] = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, body)
	}
}

// Probe handles GET /api/fertilizer-recommend.
func (h *AdvisoryCtrl) Probe(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Fertilizer API is working",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"envCheck":  h.svc.Configured(),
	})
}
