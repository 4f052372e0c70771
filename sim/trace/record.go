// Package trace provides the package-movement trace of a warehouse simulation:
// one Record per state change, its fixed-width text rendering, and summaries.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "fmt"

// Kind names the state change a record describes.
type Kind string

const (
	KindStored    Kind = "stored"     // placed in a section on arrival
	KindDelivered Kind = "delivered"  // reached its final destination
	KindRemoved   Kind = "removed"    // taken off a section by a departure
	KindRestored  Kind = "restored"   // pushed back after not fitting in the batch
	KindInTransit Kind = "in_transit" // left on a transport
)

// Record captures a single package state change.
//
// Warehouse is where the change happened. Section is the neighbour the
// section leads to (stored, removed, restored) or the transport's
// destination (in transit). Delivered records leave Section unused.
type Record struct {
	Clock     int64
	Kind      Kind
	PackageID int
	Warehouse int
	Section   int
}

// String renders the record as one trace line, without line terminator.
// The package is shown by its last two digits.
func (r Record) String() string {
	id := r.PackageID % 100
	switch r.Kind {
	case KindDelivered:
		return fmt.Sprintf("%07d pacote %03d entregue em %03d", r.Clock, id, r.Warehouse)
	case KindStored:
		return fmt.Sprintf("%07d pacote %03d armazenado em %03d na secao %03d", r.Clock, id, r.Warehouse, r.Section)
	case KindRemoved:
		return fmt.Sprintf("%07d pacote %03d removido de %03d na secao %03d", r.Clock, id, r.Warehouse, r.Section)
	case KindRestored:
		return fmt.Sprintf("%07d pacote %03d rearmazenado em %03d na secao %03d", r.Clock, id, r.Warehouse, r.Section)
	case KindInTransit:
		return fmt.Sprintf("%07d pacote %03d em transito de %03d para %03d", r.Clock, id, r.Warehouse, r.Section)
	default:
		return fmt.Sprintf("%07d pacote %03d %s em %03d", r.Clock, id, r.Kind, r.Warehouse)
	}
}
