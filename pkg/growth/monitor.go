package growth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

var ErrMonitorRunning = errors.New("monitor already running")

// Simulated weather bounds.
const (
	MinTemperatureC = 15.0
	MaxTemperatureC = 40.0
	MinHumidityPct  = 30.0
	MaxHumidityPct  = 90.0

	maxTempStep     = 1.0 // ±°C per tick
	maxHumidityStep = 2.5 // ±% per tick

	hotThresholdC   = 30.0
	dryThresholdPct = 50.0
)

type Weather struct {
	TemperatureC float64 `json:"temperature"`
	HumidityPct  float64 `json:"humidity"`
}

type Snapshot struct {
	At            time.Time `json:"at"`
	Weather       Weather   `json:"weather"`
	Status        Status    `json:"status"`
	Notifications []string  `json:"notifications"`
}

type MonitorConfig struct {
	Interval time.Duration
	Initial  Weather
	Rand     *rand.Rand
	Now      func() time.Time
}

func (c *MonitorConfig) defaults() {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Second
	}
	if c.Initial == (Weather{}) {
		c.Initial = Weather{TemperatureC: 25, HumidityPct: 60}
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Step applies one bounded random perturbation and clamps the result.
func Step(w Weather, r *rand.Rand) Weather {
	t := w.TemperatureC + (r.Float64()-0.5)*2*maxTempStep
	h := w.HumidityPct + (r.Float64()-0.5)*2*maxHumidityStep
	return Weather{
		TemperatureC: clamp(t, MinTemperatureC, MaxTemperatureC),
		HumidityPct:  clamp(h, MinHumidityPct, MaxHumidityPct),
	}
}

// Notifications derives the advisory messages for one snapshot.
func Notifications(w Weather, st Status) []string {
	out := []string{}
	if w.TemperatureC > hotThresholdC {
		out = append(out, "High temp! Consider watering.")
	}
	if w.HumidityPct < dryThresholdPct {
		out = append(out, "Low humidity. Mulching recommended.")
	}
	if st.CurrentStage != nil && st.CurrentDay > 0 {
		out = append(out, fmt.Sprintf("%s is in %s stage.", st.Crop, st.CurrentStage.Name))
	}
	return out
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

// Monitor runs the weather simulation for one plan on a ticker. It owns its
// goroutine: Stop cancels it and waits, after which publish is never called.
// publish runs on the monitor goroutine and must not block on Stop.
type Monitor struct {
	catalog *Catalog
	plan    Plan
	cfg     MonitorConfig
	publish func(Snapshot)

	mu      sync.Mutex
	weather Weather
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewMonitor(catalog *Catalog, plan Plan, cfg MonitorConfig, publish func(Snapshot)) (*Monitor, error) {
	if _, ok := catalog.Stages(plan.Crop); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCrop, plan.Crop)
	}
	cfg.defaults()
	return &Monitor{catalog: catalog, plan: plan, cfg: cfg, publish: publish, weather: cfg.Initial}, nil
}

// Start launches the ticker loop; it ends when ctx is done or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return ErrMonitorRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
	return nil
}

func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Snapshot computes the current view without advancing the simulation.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	w := m.weather
	m.mu.Unlock()
	return m.snapshot(w)
}

func (m *Monitor) snapshot(w Weather) Snapshot {
	now := m.cfg.Now()
	st, _ := m.catalog.Compute(m.plan, now) // crop validated in NewMonitor
	return Snapshot{At: now, Weather: w, Status: st, Notifications: Notifications(w, st)}
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(m.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		m.mu.Lock()
		m.weather = Step(m.weather, m.cfg.Rand)
		w := m.weather
		m.mu.Unlock()

		snap := m.snapshot(w)
		if ctx.Err() != nil {
			return
		}
		m.publish(snap)
	}
}
