package imgproc

import (
	"math"
	"testing"
	"time"
)

// stepClock advances by the next step on every call after the first.
type stepClock struct {
	t     time.Time
	steps []time.Duration
	calls int
}

func (c *stepClock) Now() time.Time {
	if c.calls > 0 && len(c.steps) > 0 {
		c.t = c.t.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	c.calls++
	return c.t
}

func TestFPSMeterTick(t *testing.T) {
	clock := &stepClock{
		t:     time.Unix(1650000000, 0),
		steps: []time.Duration{100 * time.Millisecond, 40 * time.Millisecond, 0, time.Second},
	}
	meter := NewFPSMeter(clock.Now)

	want := []float64{10, 25, 0, 1}
	for i, w := range want {
		got := meter.Tick()
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("tick %d: got %.3f, want %.3f", i, got, w)
		}
	}
}

func TestFPSMeterReset(t *testing.T) {
	clock := &stepClock{
		t:     time.Unix(1650000000, 0),
		steps: []time.Duration{time.Hour, 500 * time.Millisecond},
	}
	meter := NewFPSMeter(clock.Now)
	meter.Reset()

	if got := meter.Tick(); math.Abs(got-2) > 1e-9 {
		t.Errorf("got %.3f, want 2 after reset", got)
	}
}

func TestNewFPSMeterDefaultsToWallClock(t *testing.T) {
	meter := NewFPSMeter(nil)
	time.Sleep(time.Millisecond)
	if fps := meter.Tick(); fps <= 0 {
		t.Errorf("expected positive fps, got %f", fps)
	}
}
