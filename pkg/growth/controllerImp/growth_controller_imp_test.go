package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"agrismart/pkg/growth"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func ctrl(interval time.Duration) *GrowthCtrl {
	h := New(growth.DefaultCatalog(), interval, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h
}

func TestGrowthCtrl_Status(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/growth/status?crop=rice&planted=2026-03-31", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl(time.Second).Status(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var st growth.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 200, st.CurrentDay)
	assert.Equal(t, "Maturity", st.CurrentStage.Name)
	assert.Equal(t, 100.0, st.ProgressPercent)
}

func TestGrowthCtrl_StatusErrors(t *testing.T) {
	e := echo.New()
	for _, q := range []string{"", "?crop=yam", "?crop=rice&planted=31/03/2026"} {
		req := httptest.NewRequest(http.MethodGet, "/api/growth/status"+q, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, ctrl(time.Second).Status(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGrowthCtrl_Crops(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/growth/crops", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl(time.Second).Crops(e.NewContext(req, rec)))

	var out map[string][]growth.Stage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out["rice"], 6)
	assert.Len(t, out["tomato"], 5)
}

func TestGrowthCtrl_MonitorStreamsUntilDisconnect(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := echo.New()
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/growth/monitor?crop=tomato&planted=2026-10-01", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl(5*time.Millisecond).Monitor(e.NewContext(req, rec)))

	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event: snapshot\n"), 2)
	assert.Contains(t, body, `"stage":"Seedling"`)
}
