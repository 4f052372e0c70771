package sim

import "errors"

var (
	// ErrInvalidInput wraps every problem found while reading a scenario file.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidWarehouse is returned for a warehouse id outside [0, N).
	ErrInvalidWarehouse = errors.New("invalid warehouse id")
	// ErrUnknownPackage is returned when an event names a package that was never loaded.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrUnreachable is returned when no route connects a package's origin to its destination.
	ErrUnreachable = errors.New("destination unreachable")
	// ErrInvalidTransition is returned when a package is moved along an edge
	// that the lifecycle state machine does not allow.
	ErrInvalidTransition = errors.New("invalid package state transition")
	// ErrClockRegression is returned if the scheduler yields an event earlier than the clock.
	ErrClockRegression = errors.New("event scheduled before current clock")
	// ErrInvalidPolicy is returned by TransportPolicy.Validate.
	ErrInvalidPolicy = errors.New("invalid transport policy")
	// ErrTimeOverflow is returned when an event would be scheduled after MaxTime.
	ErrTimeOverflow = errors.New("event time beyond maximum")
)
