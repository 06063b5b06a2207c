package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrismart/database"
	"agrismart/pkg/analytics/repositoryImp"
)

type healthBody struct {
	Status string           `json:"status"`
	Checks map[string]check `json:"checks"`
}

type brokenCounter struct{}

func (brokenCounter) Counts(context.Context) (map[string]int64, error) {
	return nil, errors.New("no such table")
}

func getHealth(t *testing.T, h *HealthCtrl) (int, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, h.Health(echo.New().NewContext(req, rec)))
	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_OKWithEventCounts(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer database.Close(db)

	events := repositoryImp.New(db)
	require.NoError(t, events.Track(context.Background(), "advisory_requested", nil))

	code, body := getHealth(t, NewHealthCtrl(db, events, true))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Checks["database"].OK)
	assert.Equal(t, map[string]int64{"advisory_requested": 1}, body.Checks["analytics"].Events)
	require.NotNil(t, body.Checks["llm"].Configured)
	assert.True(t, *body.Checks["llm"].Configured)
}

func TestHealth_AnalyticsFailureDegrades(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer database.Close(db)

	code, body := getHealth(t, NewHealthCtrl(db, brokenCounter{}, false))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Checks["analytics"].OK)
	assert.Equal(t, "no such table", body.Checks["analytics"].Err)
	assert.False(t, *body.Checks["llm"].Configured)
}

func TestHealth_ClosedDB(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	require.NoError(t, database.Close(db))

	code, body := getHealth(t, NewHealthCtrl(db, nil, false))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", body.Status)
	assert.False(t, body.Checks["database"].OK)
	assert.NotEmpty(t, body.Checks["database"].Err)
	assert.NotContains(t, body.Checks, "analytics")
}

func TestHealth_NilDB(t *testing.T) {
	code, body := getHealth(t, NewHealthCtrl(nil, nil, false))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "no database configured", body.Checks["database"].Err)
}
