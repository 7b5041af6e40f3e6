package sim

import "gonum.org/v1/gonum/mat"

// World is the registry of live entities for one simulation session and the
// owner of its event queue. Entities register on creation and deregister on
// destruction; each kind lives in its own collection, kept in creation
// order so protocol decisions that walk them are deterministic.
//
// A World and everything it owns is accessed from a single goroutine;
// parallel trials must each build their own World.
type World struct {
	Queue *EventQueue

	stations []*Station
	sources  []*Source
	pairs    []*Pair
	qubits   []*Qubit

	nextID int
}

// NewWorld creates an empty world with a fresh event queue at t=0.
func NewWorld() *World {
	return &World{Queue: NewEventQueue()}
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// NewStation creates a station at the given position and registers it.
func (w *World) NewStation(label string, pos Position) *Station {
	st := &Station{id: w.newID(), Label: label, Position: pos}
	w.stations = append(w.stations, st)
	return st
}

// NewSource creates a source entangling stations a and b, driven by the
// given collaborators, and registers it.
func (w *World) NewSource(pos Position, a, b *Station, td TimeDistribution, sg StateGeneration) *Source {
	src := &Source{
		id:               w.newID(),
		Position:         pos,
		TargetStations:   [2]*Station{a, b},
		TimeDistribution: td,
		StateGeneration:  sg,
		world:            w,
	}
	w.sources = append(w.sources, src)
	return src
}

// NewPair creates a pair between a and b with the given state and resource
// costs, registering the pair and its two qubits. Qubit order follows
// station order, which matches the qubit order of the state.
func (w *World) NewPair(a, b *Station, state *mat.Dense, costMax, costAdd int) *Pair {
	p := &Pair{
		id:              w.newID(),
		Stations:        [2]*Station{a, b},
		State:           state,
		ResourceCostMax: costMax,
		ResourceCostAdd: costAdd,
		world:           w,
	}
	for i, st := range p.Stations {
		q := &Qubit{id: w.newID(), Station: st, Pair: p, world: w}
		p.Qubits[i] = q
		w.qubits = append(w.qubits, q)
	}
	w.pairs = append(w.pairs, p)
	return p
}

// Stations returns the live stations in creation order. The returned slice
// is the world's internal storage; callers must not modify it.
func (w *World) Stations() []*Station { return w.stations }

// Sources returns the live sources in creation order. The returned slice
// is the world's internal storage; callers must not modify it.
func (w *World) Sources() []*Source { return w.sources }

// Pairs returns the live pairs in creation order. The returned slice is
// the world's internal storage; callers must not modify it.
func (w *World) Pairs() []*Pair { return w.pairs }

// Qubits returns the live qubits in creation order. The returned slice is
// the world's internal storage; callers must not modify it.
func (w *World) Qubits() []*Qubit { return w.qubits }

// PairsBetween returns the live pairs connecting a and b (either order),
// earliest-created first.
func (w *World) PairsBetween(a, b *Station) []*Pair {
	var out []*Pair
	for _, p := range w.pairs {
		if p.IsBetweenStations(a, b) {
			out = append(out, p)
		}
	}
	return out
}

// ResolveNextEvent advances the queue by one event against this world.
func (w *World) ResolveNextEvent() (Event, error) {
	return w.Queue.ResolveNextEvent(w)
}

func (w *World) removePair(p *Pair) {
	for i, cand := range w.pairs {
		if cand == p {
			w.pairs = append(w.pairs[:i], w.pairs[i+1:]...)
			return
		}
	}
}

func (w *World) removeQubit(q *Qubit) {
	for i, cand := range w.qubits {
		if cand == q {
			w.qubits = append(w.qubits[:i], w.qubits[i+1:]...)
			return
		}
	}
}
