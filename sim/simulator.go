// sim/simulator.go
package sim

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// Phase is the run-level state of a Simulator.
type Phase string

const (
	PhaseLoading           Phase = "loading"
	PhaseSchedulingInitial Phase = "scheduling_initial"
	PhaseRunning           Phase = "running"
	PhaseDone              Phase = "done"
)

// SimConfig holds run options that are not part of the scenario file.
type SimConfig struct {
	// Horizon stops the run before the first event later than it. Zero means no horizon.
	Horizon int64
	// TraceLevel selects in-memory trace collection.
	TraceLevel trace.TraceLevel
}

// Simulator is the core object that holds simulation time, system state, and the event loop.
type Simulator struct {
	RunID   string
	Clock   int64
	Horizon int64
	Phase   Phase

	Policy     TransportPolicy
	Network    *Network
	Warehouses []*Warehouse
	// Packages is the package registry; warehouse sections only hold references into it.
	Packages map[int]*Package
	// loadOrder keeps scenario order for initial scheduling and reports.
	loadOrder []int
	Scheduler *Scheduler

	Metrics *Metrics
	Trace   *trace.SimulationTrace
	out     *trace.LineWriter

	EventsProcessed int
	delivered       int
}

// NewSimulator loads a scenario and schedules its initial events.
// Trace lines are written to out; a nil out discards them.
// It fails if any package has no route to its destination.
func NewSimulator(sc *Scenario, cfg SimConfig, out io.Writer) (*Simulator, error) {
	if out == nil {
		out = io.Discard
	}
	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = math.MaxInt64
	}
	s := &Simulator{
		RunID:     uuid.NewString(),
		Horizon:   horizon,
		Phase:     PhaseLoading,
		Scheduler: NewScheduler(len(sc.Packages) + 2*len(sc.Adjacency)),
		Packages:  make(map[int]*Package, len(sc.Packages)),
		Metrics:   NewMetrics(),
		Trace:     trace.NewSimulationTrace(cfg.TraceLevel),
		out:       trace.NewLineWriter(out),
	}
	if err := s.load(sc); err != nil {
		return nil, err
	}

	s.Phase = PhaseSchedulingInitial
	if err := s.scheduleInitialEvents(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator) load(sc *Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	network, err := NewNetwork(sc.Adjacency)
	if err != nil {
		return err
	}
	s.Network = network
	s.Policy = sc.Policy

	s.Warehouses = make([]*Warehouse, network.Size())
	for i := range s.Warehouses {
		s.Warehouses[i] = NewWarehouse(i, network.Size())
	}
	for _, spec := range sc.Packages {
		s.Packages[spec.ID] = NewPackage(spec.ID, spec.PostTime, spec.Origin, spec.Destination)
		s.loadOrder = append(s.loadOrder, spec.ID)
	}
	logrus.WithField("run", s.RunID).Infof("Loaded %d warehouses, %d links, %d packages, policy=%+v",
		network.Size(), len(network.Links()), len(s.loadOrder), s.Policy)
	return nil
}

// scheduleInitialEvents routes every package, schedules its arrival at the origin
// at its post time, and schedules the first departure in both directions of every
// link at time Interval.
func (s *Simulator) scheduleInitialEvents() error {
	for _, id := range s.loadOrder {
		p := s.Packages[id]
		route, err := s.Network.Route(p.Origin, p.Destination)
		if err != nil {
			return fmt.Errorf("routing package %d: %w", p.ID, err)
		}
		if err := p.SetRoute(route); err != nil {
			return err
		}
		if err := p.Transition(StateArrivalScheduled); err != nil {
			return err
		}
		if err := s.Schedule(NewArrivalEvent(p.PostTime, p.ID, p.Origin)); err != nil {
			return err
		}
	}

	for _, link := range s.Network.Links() {
		if err := s.Schedule(NewDepartureEvent(s.Policy.Interval, link.A, link.B)); err != nil {
			return err
		}
		if err := s.Schedule(NewDepartureEvent(s.Policy.Interval, link.B, link.A)); err != nil {
			return err
		}
	}
	return nil
}

// Schedule pushes an event into the simulator's scheduler.
// Events later than MaxTime are rejected.
func (s *Simulator) Schedule(ev Event) error {
	if ev.Time > MaxTime {
		return fmt.Errorf("scheduling %s: %w", ev, ErrTimeOverflow)
	}
	s.Scheduler.Insert(ev)
	return nil
}

// AllDelivered reports whether every package reached its destination.
func (s *Simulator) AllDelivered() bool {
	return s.delivered == len(s.Packages)
}

// Delivered returns the number of delivered packages.
func (s *Simulator) Delivered() int {
	return s.delivered
}

// Done reports whether the run has finished.
func (s *Simulator) Done() bool {
	return s.Phase == PhaseDone
}

// Step processes the next event. It returns false once the run is finished:
// the scheduler is empty, every package is delivered, or the next event lies
// beyond the horizon.
func (s *Simulator) Step() (bool, error) {
	if s.Phase == PhaseDone {
		return false, nil
	}
	s.Phase = PhaseRunning
	if s.AllDelivered() {
		return false, s.finish()
	}
	ev, ok := s.Scheduler.Peek()
	if !ok {
		return false, s.finish()
	}
	if ev.Time > s.Horizon {
		logrus.Infof("[tick %07d] Horizon %d reached", s.Clock, s.Horizon)
		return false, s.finish()
	}
	s.Scheduler.PopMin()
	if ev.Time < s.Clock {
		return false, s.abort(fmt.Errorf("%s at clock %d: %w", ev, s.Clock, ErrClockRegression))
	}

	s.Clock = ev.Time
	logrus.Debugf("[tick %07d] Executing %s", s.Clock, ev)

	var err error
	switch ev.Kind {
	case KindArrival:
		err = s.handleArrival(s.Clock, ev)
	case KindDeparture:
		err = s.handleDeparture(s.Clock, ev)
	default:
		err = fmt.Errorf("unknown event kind %d", ev.Kind)
	}
	if err != nil {
		return false, s.abort(err)
	}

	s.EventsProcessed++
	s.Metrics.EventsProcessed.WithLabelValues(ev.Kind.String()).Inc()
	s.Metrics.PendingEvents.Set(float64(s.Scheduler.Len()))
	s.Metrics.Clock.Set(float64(s.Clock))
	return true, nil
}

// Run processes events until the run finishes, then flushes the trace output.
func (s *Simulator) Run() error {
	logrus.WithField("run", s.RunID).Infof("[tick %07d] Simulation started with %d pending events", s.Clock, s.Scheduler.Len())
	for {
		more, err := s.Step()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	logrus.WithField("run", s.RunID).Infof("[tick %07d] Simulation ended: %d/%d delivered, %d events processed, %d pending",
		s.Clock, s.delivered, len(s.Packages), s.EventsProcessed, s.Scheduler.Len())
	return nil
}

func (s *Simulator) finish() error {
	s.Phase = PhaseDone
	return s.out.Flush()
}

// abort writes out the trace produced before err so the output ends at the
// last completed change.
func (s *Simulator) abort(err error) error {
	if ferr := s.out.Flush(); ferr != nil {
		logrus.Warnf("Flushing trace after failure: %v", ferr)
	}
	return err
}

// handleArrival places an arriving package: delivered at its destination,
// otherwise stored in the section for its next hop.
func (s *Simulator) handleArrival(now int64, ev Event) error {
	p, ok := s.Packages[ev.PackageID]
	if !ok {
		return fmt.Errorf("arrival of package %d: %w", ev.PackageID, ErrUnknownPackage)
	}
	if !s.Network.Valid(ev.WarehouseID) {
		return fmt.Errorf("arrival of package %d at %d: %w", p.ID, ev.WarehouseID, ErrInvalidWarehouse)
	}
	if p.State == StateRemovedForTransport {
		p.TimeInTransit += now - p.transitSince
	}
	if p.NextHop() == ev.WarehouseID {
		p.advanceRoute()
	}

	if ev.WarehouseID == p.Destination {
		if err := p.Transition(StateDelivered); err != nil {
			return err
		}
		p.DeliveredAt = now
		s.delivered++
		s.Metrics.PackagesDelivered.Inc()
		s.Metrics.DeliveryLatency.Observe(float64(now - p.PostTime))
		return s.emit(trace.Record{Clock: now, Kind: trace.KindDelivered, PackageID: p.ID, Warehouse: ev.WarehouseID})
	}

	if err := p.Transition(StateStored); err != nil {
		return err
	}
	section, err := s.Warehouses[ev.WarehouseID].Store(p)
	if err != nil {
		return err
	}
	p.storedSince = now
	return s.emit(trace.Record{Clock: now, Kind: trace.KindStored, PackageID: p.ID, Warehouse: ev.WarehouseID, Section: section})
}

// handleDeparture drains the origin's section for the destination, loads the
// oldest-posted packages up to capacity and pushes the rest back.
//
// The operation clock starts at now and advances by RemovalCost for every
// drained package. Packages are taken off from the newest-posted end, so the
// oldest package left behind ends on top of the section. Loaded packages
// leave at the final operation time and arrive Latency ticks later.
func (s *Simulator) handleDeparture(now int64, ev Event) error {
	if !s.Network.Valid(ev.OriginID) {
		return fmt.Errorf("departure from %d: %w", ev.OriginID, ErrInvalidWarehouse)
	}
	section, err := s.Warehouses[ev.OriginID].Section(ev.DestinationID)
	if err != nil {
		return err
	}
	next := NewDepartureEvent(now+s.Policy.Interval, ev.OriginID, ev.DestinationID)

	if section.IsEmpty() {
		s.Metrics.EmptyDepartures.Inc()
		return s.Schedule(next)
	}

	drained := section.Drain()
	slices.SortStableFunc(drained, func(a, b *Package) int {
		return cmp.Compare(a.PostTime, b.PostTime)
	})
	loaded := s.Policy.batchSize(len(drained))

	opTime := now
	for i := len(drained) - 1; i >= 0; i-- {
		p := drained[i]
		opTime += s.Policy.RemovalCost
		if err := s.emit(trace.Record{Clock: opTime, Kind: trace.KindRemoved, PackageID: p.ID, Warehouse: ev.OriginID, Section: ev.DestinationID}); err != nil {
			return err
		}
		if i < loaded {
			if err := p.Transition(StateRemovedForTransport); err != nil {
				return err
			}
			p.TimeStored += opTime - p.storedSince
			continue
		}
		section.Push(p)
		if err := p.Transition(StateStored); err != nil {
			return err
		}
		s.Metrics.PackagesRestored.Inc()
		if err := s.emit(trace.Record{Clock: opTime, Kind: trace.KindRestored, PackageID: p.ID, Warehouse: ev.OriginID, Section: ev.DestinationID}); err != nil {
			return err
		}
	}

	for _, p := range drained[:loaded] {
		p.transitSince = opTime
		if err := s.emit(trace.Record{Clock: opTime, Kind: trace.KindInTransit, PackageID: p.ID, Warehouse: ev.OriginID, Section: ev.DestinationID}); err != nil {
			return err
		}
		if err := s.Schedule(NewArrivalEvent(opTime+s.Policy.Latency, p.ID, ev.DestinationID)); err != nil {
			return err
		}
	}
	s.Metrics.BatchSize.Observe(float64(loaded))

	if !s.AllDelivered() {
		return s.Schedule(next)
	}
	return nil
}

// emit writes a trace line and keeps the record if tracing is enabled.
func (s *Simulator) emit(rec trace.Record) error {
	s.Trace.Record(rec)
	if err := s.out.WriteRecord(rec); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}
