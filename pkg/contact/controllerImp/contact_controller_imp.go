package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrismart/pkg/contact"
	"agrismart/pkg/contact/service"
)

type ContactCtrl struct {
	svc service.ContactService
	log *zap.Logger
}

func New(svc service.ContactService, log *zap.Logger) *ContactCtrl {
	return &ContactCtrl{svc: svc, log: log}
}

// Submit handles POST /api/contact.
func (h *ContactCtrl) Submit(c echo.Context) error {
	var f contact.Form
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	id, err := h.svc.Submit(c.Request().Context(), f)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		h.log.Error("contact submit", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not send message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id, "message": contact.ThankYou})
}
