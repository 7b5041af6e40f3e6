// Package sim provides the core discrete-event simulation engine for the
// quantum-repeater chain simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event_queue.go: the time-ordered queue and the simulation clock
//   - event.go: the event types that drive the simulation (source trials, swaps)
//   - protocol.go: the decision cycle (replenish, swap, harvest)
//
// # Architecture
//
// The sim package owns the entity model and the control loop; supporting
// concerns live in sub-packages:
//   - sim/quantum/: density-matrix states, noise channels, swap combination
//   - sim/scenario/: YAML scenario specs, link-budget math, world building
//   - sim/trace/: resolution trace recording
//
// A World holds the live entities (stations, sources, pairs, qubits) and
// the EventQueue. A Protocol inspects world and queue each cycle and issues
// scheduling commands; it never advances time. The Simulator driver
// alternates Protocol.Check with EventQueue.ResolveNextEvent until a stop
// predicate holds or the queue drains.
//
// Everything owned by one World is single-goroutine; parallel trials must
// each build an isolated World.
package sim
