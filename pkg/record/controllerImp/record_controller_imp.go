package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrismart/entities"
	"agrismart/pkg/record"
	"agrismart/pkg/record/repository"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RecordCtrl struct{ store repository.RecordStore }

func New(store repository.RecordStore) *RecordCtrl { return &RecordCtrl{store: store} }

func (h *RecordCtrl) List(c echo.Context) error {
	kind, limit, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	list, err := h.store.List(c.Request().Context(), kind, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list recommendations"})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordCtrl) Get(c echo.Context) error {
	rec, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load recommendation"})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecordCtrl) Export(c echo.Context) error {
	kind, limit, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	list, err := h.store.List(c.Request().Context(), kind, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list recommendations"})
	}
	var buf bytes.Buffer
	if err := record.WriteXLSX(&buf, list); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build workbook"})
	}
	name := fmt.Sprintf("recommendations-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func listParams(c echo.Context) (string, int, error) {
	kind := c.QueryParam("kind")
	if kind != "" && kind != entities.KindAnalysis && kind != entities.KindAdvisory {
		return "", 0, fmt.Errorf("unknown kind %q", kind)
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return "", 0, fmt.Errorf("invalid limit %q", v)
		}
		limit = n
	}
	return kind, limit, nil
}
