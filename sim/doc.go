// Package sim provides the discrete-event simulation engine for warehouse-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - package.go: Package lifecycle (not posted → scheduled → stored ⇄ in transit → delivered)
//   - event.go: the two event variants (Arrival, Departure) and their priority key
//   - simulator.go: the event loop and the arrival/departure handlers
//
// # Architecture
//
//   - scheduler.go: min-heap of pending events ordered by Event.PriorityKey
//   - router.go: static warehouse graph and breadth-first shortest routes
//   - warehouse.go: per-destination LIFO sections
//   - transport.go: capacity, latency, interval and removal cost of every departure
//   - scenario.go: scenario file parsing and validation
//   - metrics.go, report.go: per-run Prometheus registry and end-of-run report
//   - sim/trace/: movement records, their text rendering and summaries
//
// A run is single-threaded. Two events with different keys are always
// processed in key order; the key encodes time, identifying fields and the
// event kind, so same-time ties never depend on insertion order.
package sim
