package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EventCounter is the analytics store as seen by the probe.
type EventCounter interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

type check struct {
	OK         bool             `json:"ok"`
	Err        string           `json:"err,omitempty"`
	Configured *bool            `json:"configured,omitempty"`
	Events     map[string]int64 `json:"events,omitempty"`
}

func failed(err error) check { return check{Err: err.Error()} }

type HealthCtrl struct {
	db      *gorm.DB
	events  EventCounter
	llmLive bool
	started time.Time
}

// NewHealthCtrl reports on the database, the stored analytics events and
// whether advisories reach a real model. events may be nil.
func NewHealthCtrl(db *gorm.DB, events EventCounter, llmLive bool) *HealthCtrl {
	return &HealthCtrl{db: db, events: events, llmLive: llmLive, started: time.Now()}
}

func pingDB(ctx context.Context, db *gorm.DB) check {
	if db == nil {
		return failed(errors.New("no database configured"))
	}
	sqlDB, err := db.DB()
	if err != nil {
		return failed(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return failed(err)
	}
	return check{OK: true}
}

func countEvents(ctx context.Context, ec EventCounter) check {
	counts, err := ec.Counts(ctx)
	if err != nil {
		return failed(err)
	}
	return check{OK: true, Events: counts}
}

// Health answers 503 only when the database is down. A failing analytics
// count or the offline mock degrade the report without failing it.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]check{
		"database": pingDB(ctx, h.db),
		"llm":      {OK: true, Configured: &h.llmLive},
	}
	if h.events != nil {
		checks["analytics"] = countEvents(ctx, h.events)
	}

	state, code := "ok", http.StatusOK
	if !checks["database"].OK {
		state, code = "down", http.StatusServiceUnavailable
	} else if a, ok := checks["analytics"]; ok && !a.OK {
		state = "degraded"
	}

	return c.JSON(code, echo.Map{
		"status":     state,
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     checks,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
