// Package trace provides resolution-trace recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Record captures one resolved event on the simulation timeline.
type Record struct {
	Time   float64 // simulation clock when the event resolved
	Kind   string  // event type name
	Detail string  // event's own description
}
