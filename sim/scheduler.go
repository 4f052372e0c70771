package sim

import "container/heap"

// eventHeap implements heap.Interface over event values, ordered by PriorityKey.
// container/heap sifts down towards the smaller child, taking the left child
// when both children are equal, and stops on equal keys.
type eventHeap []Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].PriorityKey() < h[j].PriorityKey() }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// Scheduler is the pending-event queue of a simulation run.
// It is the only source of "what happens next".
type Scheduler struct {
	events eventHeap
}

// NewScheduler creates an empty scheduler with room for capacity events.
// The backing slice doubles when full.
func NewScheduler(capacity int) *Scheduler {
	s := &Scheduler{events: make(eventHeap, 0, max(capacity, 0))}
	heap.Init(&s.events)
	return s
}

// Insert adds an event.
func (s *Scheduler) Insert(e Event) {
	heap.Push(&s.events, e)
}

// PopMin removes and returns the event with the smallest priority key.
// The second return value is false when the scheduler is empty.
func (s *Scheduler) PopMin() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(&s.events).(Event), true
}

// Peek returns the next event without removing it.
func (s *Scheduler) Peek() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	return s.events[0], true
}

// IsEmpty reports whether no events are pending.
func (s *Scheduler) IsEmpty() bool {
	return len(s.events) == 0
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.events)
}
