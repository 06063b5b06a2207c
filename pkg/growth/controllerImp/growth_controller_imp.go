package controllerImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrismart/pkg/growth"
)

type GrowthCtrl struct {
	catalog  *growth.Catalog
	interval time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func New(catalog *growth.Catalog, interval time.Duration, log *zap.Logger) *GrowthCtrl {
	return &GrowthCtrl{catalog: catalog, interval: interval, now: time.Now, log: log}
}

// Crops handles GET /api/growth/crops.
func (h *GrowthCtrl) Crops(c echo.Context) error {
	out := map[string][]growth.Stage{}
	for _, crop := range h.catalog.Crops() {
		out[crop], _ = h.catalog.Stages(crop)
	}
	return c.JSON(http.StatusOK, out)
}

// Status handles GET /api/growth/status?crop=rice&planted=2026-01-31.
func (h *GrowthCtrl) Status(c echo.Context) error {
	plan, err := planFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	st, err := h.catalog.Compute(plan, h.now())
	if errors.Is(err, growth.ErrUnknownCrop) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "growth status failed"})
	}
	return c.JSON(http.StatusOK, st)
}

// Monitor handles GET /api/growth/monitor as a Server-Sent Events stream.
// The simulation lives exactly as long as the client connection.
func (h *GrowthCtrl) Monitor(c echo.Context) error {
	plan, err := planFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	snaps := make(chan growth.Snapshot, 1)
	mon, err := growth.NewMonitor(h.catalog, plan, growth.MonitorConfig{Interval: h.interval, Now: h.now}, func(s growth.Snapshot) {
		// keep only the newest snapshot if the client is slow
		select {
		case snaps <- s:
		default:
			select {
			case <-snaps:
			default:
			}
			select {
			case snaps <- s:
			default:
			}
		}
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if err := mon.Start(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	defer mon.Stop()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, mon.Snapshot()); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-snaps:
			if err := writeEvent(res, s); err != nil {
				h.log.Debug("monitor stream closed", zap.Error(err))
				return nil
			}
		}
	}
}

func writeEvent(res *echo.Response, s growth.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", b); err != nil {
		return err
	}
	res.Flush()
	return nil
}

func planFromQuery(c echo.Context) (growth.Plan, error) {
	crop := strings.TrimSpace(c.QueryParam("crop"))
	if crop == "" {
		return growth.Plan{}, errors.New("crop is required")
	}
	plan := growth.Plan{Crop: crop}
	if v := strings.TrimSpace(c.QueryParam("planted")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return growth.Plan{}, fmt.Errorf("planted must be YYYY-MM-DD, got %q", v)
		}
		plan.PlantingDate = &d
	}
	return plan, nil
}
