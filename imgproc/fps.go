package imgproc

import "time"

// FPSMeter reports the instantaneous frame rate between consecutive ticks.
type FPSMeter struct {
	now  func() time.Time
	prev time.Time
}

// NewFPSMeter starts a meter at the current time of clock. A nil clock means time.Now.
func NewFPSMeter(clock func() time.Time) *FPSMeter {
	if clock == nil {
		clock = time.Now
	}
	return &FPSMeter{now: clock, prev: clock()}
}

// Reset restarts the meter from the current time.
func (m *FPSMeter) Reset() {
	m.prev = m.now()
}

// Tick records a frame and returns 1 / (seconds since the previous tick).
// Returns 0 if the clock did not move forward.
func (m *FPSMeter) Tick() float64 {
	now := m.now()
	elapsed := now.Sub(m.prev)
	m.prev = now
	if elapsed <= 0 {
		return 0
	}
	return 1 / elapsed.Seconds()
}
