package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// scheduledEvent wraps an event with the keys the queue orders by: the
// scheduled time, ties broken by insertion sequence so events scheduled for
// the same instant resolve in FIFO order. Determinism of test traces
// depends on this tie-break.
type scheduledEvent struct {
	event Event
	time  float64
	seq   uint64
}

// eventHeap implements heap.Interface over scheduled events.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue holds the pending events of one simulation session and owns
// its clock. The clock only moves forward, and only when an event resolves.
type EventQueue struct {
	events  eventHeap
	seq     uint64
	current float64
}

// NewEventQueue creates an empty queue with the clock at 0.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// CurrentTime returns the simulation clock in seconds.
func (q *EventQueue) CurrentTime() float64 { return q.current }

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.events) }

// AddEvent inserts an event keyed by its scheduled time. Scheduling before
// the current clock is a logic error and fails with InvalidScheduleError.
// Safe to call from inside an event's Resolve (re-entrant scheduling).
func (q *EventQueue) AddEvent(ev Event) error {
	t := ev.Time()
	if t < q.current {
		return &InvalidScheduleError{EventTime: t, CurrentTime: q.current}
	}
	q.seq++
	heap.Push(&q.events, scheduledEvent{event: ev, time: t, seq: q.seq})
	return nil
}

// ResolveNextEvent removes the earliest pending event, advances the clock
// to its scheduled time, and resolves it against the world. Resolution runs
// to completion before the next pop, so events it schedules cannot be
// reordered under it. Returns ErrEmptyQueue when nothing is pending.
func (q *EventQueue) ResolveNextEvent(w *World) (Event, error) {
	if len(q.events) == 0 {
		return nil, ErrEmptyQueue
	}
	item := heap.Pop(&q.events).(scheduledEvent)
	q.current = item.time
	logrus.Debugf("[t=%g] resolving %T", q.current, item.event)
	if err := item.event.Resolve(w); err != nil {
		return item.event, err
	}
	return item.event, nil
}

// Each walks the pending events in unspecified order, stopping early if fn
// returns false. Read-only inspection for protocol bookkeeping; the queue
// must not be mutated from inside fn.
func (q *EventQueue) Each(fn func(Event) bool) {
	for _, item := range q.events {
		if !fn(item.event) {
			return
		}
	}
}
