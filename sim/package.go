// Defines the Package struct that models a single parcel moving through the warehouse network.
// Tracks identity, route progress, lifecycle state and time spent stored or in transit.

package sim

import (
	"fmt"
	"slices"
)

// PackageState represents the lifecycle state of a package.
type PackageState string

const (
	StateNotPosted           PackageState = "not_posted"
	StateArrivalScheduled    PackageState = "arrival_scheduled"
	StateStored              PackageState = "stored"
	StateRemovedForTransport PackageState = "removed_for_transport"
	StateDelivered           PackageState = "delivered"
)

// validTransitions lists the edges of the package lifecycle.
// STORED -> STORED is re-storage after a departure that did not pick the package.
var validTransitions = map[PackageState][]PackageState{
	StateNotPosted:           {StateArrivalScheduled},
	StateArrivalScheduled:    {StateStored, StateDelivered},
	StateStored:              {StateRemovedForTransport, StateStored},
	StateRemovedForTransport: {StateStored, StateDelivered},
	StateDelivered:           nil,
}

// Package is a parcel travelling from Origin to Destination.
type Package struct {
	ID          int // Unique identifier, fixed at load time
	PostTime    int64
	Origin      int
	Destination int

	State PackageState

	route       []int // origin..destination inclusive, immutable once set
	routeCursor int   // index of the next unvisited hop

	TimeStored    int64 // total ticks spent in warehouse sections
	TimeInTransit int64 // total ticks spent between warehouses
	DeliveredAt   int64 // clock at delivery, -1 until delivered

	storedSince  int64
	transitSince int64
}

// NewPackage creates a package in the NOT_POSTED state.
func NewPackage(id int, postTime int64, origin, destination int) *Package {
	return &Package{
		ID:          id,
		PostTime:    postTime,
		Origin:      origin,
		Destination: destination,
		State:       StateNotPosted,
		DeliveredAt: -1,
	}
}

// SetRoute assigns the route once. A second call is an error.
func (p *Package) SetRoute(route []int) error {
	if p.route != nil {
		return fmt.Errorf("package %d: route already set", p.ID)
	}
	if len(route) == 0 || route[0] != p.Origin || route[len(route)-1] != p.Destination {
		return fmt.Errorf("package %d: route %v does not join %d to %d: %w", p.ID, route, p.Origin, p.Destination, ErrUnreachable)
	}
	p.route = slices.Clone(route)
	return nil
}

// Route returns a copy of the package's route.
func (p *Package) Route() []int {
	return slices.Clone(p.route)
}

// RouteCursor returns the index of the next unvisited hop.
func (p *Package) RouteCursor() int {
	return p.routeCursor
}

// NextHop returns the warehouse at the route cursor, or -1 once the route is exhausted.
func (p *Package) NextHop() int {
	if p.routeCursor < len(p.route) {
		return p.route[p.routeCursor]
	}
	return -1
}

// Hops is the number of links on the route.
func (p *Package) Hops() int {
	return max(len(p.route)-1, 0)
}

// advanceRoute moves the cursor one hop forward. It never moves past the end.
func (p *Package) advanceRoute() {
	if p.routeCursor < len(p.route) {
		p.routeCursor++
	}
}

// Transition moves the package to next if the lifecycle allows it.
func (p *Package) Transition(next PackageState) error {
	if slices.Contains(validTransitions[p.State], next) {
		p.State = next
		return nil
	}
	return fmt.Errorf("package %d: %s -> %s: %w", p.ID, p.State, next, ErrInvalidTransition)
}

// IsDelivered reports whether the package reached its terminal state.
func (p *Package) IsDelivered() bool {
	return p.State == StateDelivered
}

func (p *Package) String() string {
	return fmt.Sprintf("Package: (ID: %d, State: %s, Route: %v, Cursor: %d, PostTime: %d)", p.ID, p.State, p.route, p.routeCursor, p.PostTime)
}
