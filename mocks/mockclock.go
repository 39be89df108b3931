package mocks

import "time"

// MockClock is a clock that only moves when told to
type MockClock struct {
	Now   float64         // seconds reported by the next call
	Tick  float64         // added to Now after every Seconds call
	Slept []time.Duration // every Sleep request
}

func (mc *MockClock) Seconds() float64 {
	now := mc.Now
	mc.Now += mc.Tick
	return now
}

// Sleep records d and moves the clock forward by it
func (mc *MockClock) Sleep(d time.Duration) {
	mc.Slept = append(mc.Slept, d)
	mc.Now += d.Seconds()
}
