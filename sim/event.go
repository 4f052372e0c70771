package sim

import (
	"fmt"
	"math"
)

// EventKind discriminates the two event variants. The numeric value is the
// trailing digit of the priority key.
type EventKind int

const (
	// KindArrival is a package reaching a warehouse.
	KindArrival EventKind = 1
	// KindDeparture is a recurring transport attempt on one directed pair.
	KindDeparture EventKind = 2
)

func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "arrival"
	case KindDeparture:
		return "departure"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

const (
	keyTimeScale   = 10_000_000 // time occupies the digits above 10^7
	keyOriginScale = 10_000     // departure origin occupies digits 10^4..10^6
	keyFieldScale  = 10         // package id / departure destination sit above the kind digit

	// MaxTime is the latest schedulable time whose priority key still fits in an int64.
	MaxTime = math.MaxInt64/keyTimeScale - 1
)

// Event is a tagged union of the two simulation event variants.
// Arrival events use PackageID and WarehouseID; departure events use
// OriginID and DestinationID. Events are values and are never mutated
// once scheduled.
type Event struct {
	Kind EventKind
	Time int64 // Simulation time (in ticks)

	PackageID   int // arrival only
	WarehouseID int // arrival only: warehouse being arrived at

	OriginID      int // departure only
	DestinationID int // departure only: section being drained
}

// NewArrivalEvent creates an arrival of packageID at warehouseID.
func NewArrivalEvent(time int64, packageID, warehouseID int) Event {
	return Event{Kind: KindArrival, Time: time, PackageID: packageID, WarehouseID: warehouseID}
}

// NewDepartureEvent creates a transport attempt from origin towards destination.
func NewDepartureEvent(time int64, origin, destination int) Event {
	return Event{Kind: KindDeparture, Time: time, OriginID: origin, DestinationID: destination}
}

// PriorityKey returns the total-order key of the event. Lower keys run first.
//
//	arrival:   time*10^7 + packageID*10 + 1
//	departure: time*10^7 + originID*10^4 + destinationID*10 + 2
//
// On equal time the tie is broken by the event's own identifying fields,
// never by insertion order.
func (e Event) PriorityKey() int64 {
	key := e.Time * keyTimeScale
	switch e.Kind {
	case KindArrival:
		key += int64(e.PackageID) * keyFieldScale
	case KindDeparture:
		key += int64(e.OriginID)*keyOriginScale + int64(e.DestinationID)*keyFieldScale
	}
	return key + int64(e.Kind)
}

func (e Event) String() string {
	switch e.Kind {
	case KindArrival:
		return fmt.Sprintf("Arrival(t=%d, pkg=%d, wh=%d)", e.Time, e.PackageID, e.WarehouseID)
	case KindDeparture:
		return fmt.Sprintf("Departure(t=%d, %d->%d)", e.Time, e.OriginID, e.DestinationID)
	default:
		return fmt.Sprintf("Event(kind=%d, t=%d)", int(e.Kind), e.Time)
	}
}
