package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_PriorityKey_Formula(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want int64
	}{
		{"arrival at zero", NewArrivalEvent(0, 7, 0), 71},
		{"arrival", NewArrivalEvent(13, 3, 1), 13*10_000_000 + 3*10 + 1},
		{"departure", NewDepartureEvent(10, 1, 2), 10*10_000_000 + 1*10_000 + 2*10 + 2},
		{"departure from zero", NewDepartureEvent(5, 0, 1), 50_000_012},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ev.PriorityKey())
		})
	}
}

func TestEvent_PriorityKey_SameTimeTieBreak(t *testing.T) {
	// Arrival of package 0 and departure 0->0 differ only in the kind digit.
	arrival := NewArrivalEvent(4, 0, 1)
	departure := NewDepartureEvent(4, 0, 0)
	assert.Less(t, arrival.PriorityKey(), departure.PriorityKey())

	// Identifying fields order events at equal time, not creation order.
	late := NewArrivalEvent(4, 9, 0)
	early := NewArrivalEvent(4, 2, 0)
	assert.Less(t, early.PriorityKey(), late.PriorityKey())

	// Time dominates every tail.
	assert.Less(t, NewDepartureEvent(4, 999, 999).PriorityKey(), NewArrivalEvent(5, 0, 0).PriorityKey())
	assert.Less(t, NewArrivalEvent(4, MaxPackageID, 0).PriorityKey(), NewArrivalEvent(5, 0, 0).PriorityKey())
}

func TestEvent_PriorityKey_BoundedAtMaxTime(t *testing.T) {
	// GIVEN the largest identifying fields at the latest schedulable time
	arrival := NewArrivalEvent(MaxTime, MaxPackageID, 0)
	departure := NewDepartureEvent(MaxTime, MaxWarehouses-1, MaxWarehouses-1)

	// THEN the keys stay positive and above every key one tick earlier
	assert.Positive(t, arrival.PriorityKey())
	assert.Positive(t, departure.PriorityKey())
	assert.Less(t, NewDepartureEvent(MaxTime-1, MaxWarehouses-1, MaxWarehouses-1).PriorityKey(), arrival.PriorityKey())
	assert.Less(t, arrival.PriorityKey(), departure.PriorityKey())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "arrival", KindArrival.String())
	assert.Equal(t, "departure", KindDeparture.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
