package growth

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStep_StaysInBounds(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	w := Weather{TemperatureC: 39.9, HumidityPct: 30.5}
	for i := 0; i < 5000; i++ {
		next := Step(w, r)
		assert.LessOrEqual(t, next.TemperatureC-w.TemperatureC, maxTempStep+1e-9)
		assert.GreaterOrEqual(t, next.TemperatureC, MinTemperatureC)
		assert.LessOrEqual(t, next.TemperatureC, MaxTemperatureC)
		assert.GreaterOrEqual(t, next.HumidityPct, MinHumidityPct)
		assert.LessOrEqual(t, next.HumidityPct, MaxHumidityPct)
		w = next
	}
}

func TestNotifications(t *testing.T) {
	stage := Stage{Name: "Tillering", Days: 50}
	st := Status{Crop: "rice", CurrentDay: 30, CurrentStage: &stage}

	got := Notifications(Weather{TemperatureC: 31, HumidityPct: 45}, st)
	assert.Equal(t, []string{
		"High temp! Consider watering.",
		"Low humidity. Mulching recommended.",
		"rice is in Tillering stage.",
	}, got)

	assert.Empty(t, Notifications(Weather{TemperatureC: 30, HumidityPct: 50}, Status{}))

	st.CurrentDay = 0
	assert.Empty(t, Notifications(Weather{TemperatureC: 20, HumidityPct: 70}, st))
}

type snapSink struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (s *snapSink) publish(sn Snapshot) {
	s.mu.Lock()
	s.snaps = append(s.snaps, sn)
	s.mu.Unlock()
}

func (s *snapSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

func TestMonitor_TicksAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	planted := time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC)
	sink := &snapSink{}
	m, err := NewMonitor(DefaultCatalog(), Plan{Crop: "rice", PlantingDate: &planted}, MonitorConfig{
		Interval: 5 * time.Millisecond,
		Initial:  Weather{TemperatureC: 35, HumidityPct: 40},
		Rand:     rand.New(rand.NewSource(1)),
		Now:      func() time.Time { return now },
	}, sink.publish)
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	assert.ErrorIs(t, m.Start(context.Background()), ErrMonitorRunning)

	require.Eventually(t, func() bool { return sink.len() >= 3 }, 2*time.Second, 5*time.Millisecond)
	m.Stop()
	n := sink.len()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, sink.len(), "published after Stop")

	sink.mu.Lock()
	first := sink.snaps[0]
	sink.mu.Unlock()
	assert.Equal(t, 30, first.Status.CurrentDay)
	assert.Equal(t, "Tillering", first.Status.CurrentStage.Name)
	assert.Contains(t, first.Notifications, "rice is in Tillering stage.")
	assert.Contains(t, first.Notifications, "High temp! Consider watering.")

	// Stop is idempotent and the monitor can be restarted
	m.Stop()
	require.NoError(t, m.Start(context.Background()))
	m.Stop()
}

func TestMonitor_ContextCancelEndsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &snapSink{}
	m, err := NewMonitor(DefaultCatalog(), Plan{Crop: "tomato"}, MonitorConfig{Interval: time.Millisecond}, sink.publish)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx))
	cancel()
	m.Stop()

	snap := m.Snapshot()
	assert.Nil(t, snap.Status.CurrentStage)
	assert.InDelta(t, 25, snap.Weather.TemperatureC, 5)
	assert.InDelta(t, 60, snap.Weather.HumidityPct, 15)
}

func TestNewMonitor_UnknownCrop(t *testing.T) {
	_, err := NewMonitor(DefaultCatalog(), Plan{Crop: "yam"}, MonitorConfig{}, func(Snapshot) {})
	assert.ErrorIs(t, err, ErrUnknownCrop)
}
