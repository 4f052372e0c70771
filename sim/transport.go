package sim

import "fmt"

// TransportPolicy holds the global parameters governing every departure.
// All durations are in ticks.
type TransportPolicy struct {
	Capacity    int   `yaml:"capacity"`     // max packages per batch
	Latency     int64 `yaml:"latency"`      // transit duration between adjacent warehouses
	Interval    int64 `yaml:"interval"`     // time between departure attempts on one directed pair
	RemovalCost int64 `yaml:"removal_cost"` // time charged per package taken off a section
}

// Validate checks that the policy can drive a simulation.
// A zero interval would reschedule departures at the same instant forever.
func (tp TransportPolicy) Validate() error {
	if tp.Capacity < 1 {
		return fmt.Errorf("capacity must be >= 1, got %d: %w", tp.Capacity, ErrInvalidPolicy)
	}
	if tp.Interval < 1 {
		return fmt.Errorf("interval must be >= 1, got %d: %w", tp.Interval, ErrInvalidPolicy)
	}
	if tp.Latency < 0 {
		return fmt.Errorf("latency must be >= 0, got %d: %w", tp.Latency, ErrInvalidPolicy)
	}
	if tp.RemovalCost < 0 {
		return fmt.Errorf("removal cost must be >= 0, got %d: %w", tp.RemovalCost, ErrInvalidPolicy)
	}
	for _, d := range []struct {
		name string
		v    int64
	}{{"latency", tp.Latency}, {"interval", tp.Interval}, {"removal cost", tp.RemovalCost}} {
		if d.v > MaxTime {
			return fmt.Errorf("%s %d exceeds %d: %w", d.name, d.v, MaxTime, ErrInvalidPolicy)
		}
	}
	return nil
}

// batchSize returns how many of n drained packages fit in one transport.
func (tp TransportPolicy) batchSize(n int) int {
	return min(n, tp.Capacity)
}
