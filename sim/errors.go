package sim

import (
	"errors"
	"fmt"
)

// ErrEmptyQueue is returned by ResolveNextEvent when no events are pending.
// It signals that the simulation has naturally run out of work; drivers
// either check Len() before resolving or treat this error as the stop
// condition.
var ErrEmptyQueue = errors.New("event queue is empty")

// InvalidScheduleError reports an attempt to schedule an event before the
// current simulation time. This always indicates a bug in a time
// computation, never a recoverable condition.
type InvalidScheduleError struct {
	EventTime   float64
	CurrentTime float64
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("cannot schedule event at t=%g before current time t=%g", e.EventTime, e.CurrentTime)
}

// TopologyError reports a station/source configuration that does not form
// the chain shape a protocol expects. Surfaced by Setup and fatal.
type TopologyError struct {
	Reason string
}

func (e *TopologyError) Error() string {
	return "invalid chain topology: " + e.Reason
}

// InterfaceError reports a source that lacks a capability the protocol
// requires to drive it. Surfaced by Setup and fatal.
type InterfaceError struct {
	SourceID int
	Missing  string
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("source %d lacks required capability: %s", e.SourceID, e.Missing)
}

// NotInitializedError reports a Check call on a protocol whose Setup has
// not run. Programmer error, fatal.
type NotInitializedError struct {
	Protocol string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s.Check called before Setup", e.Protocol)
}

// DoubleDestroyError reports destruction of an entity that is already
// gone. The protocol and swap code never destroy an entity twice in
// normal flow, so this always indicates a bookkeeping bug.
type DoubleDestroyError struct {
	Kind string
	ID   int
}

func (e *DoubleDestroyError) Error() string {
	return fmt.Sprintf("%s %d destroyed twice", e.Kind, e.ID)
}
