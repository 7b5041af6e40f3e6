package sim

import "gonum.org/v1/gonum/mat"

// Qubit is one half of an entangled pair, stored in a station's memory.
// A qubit belongs to exactly one Pair for its whole life and is destroyed
// with it, releasing the memory slot.
type Qubit struct {
	id      int
	Station *Station
	Pair    *Pair

	world     *World
	destroyed bool
}

// ID returns the qubit's world-unique identity.
func (q *Qubit) ID() int { return q.id }

// Destroyed reports whether the qubit has been destroyed.
func (q *Qubit) Destroyed() bool { return q.destroyed }

// Destroy deregisters the qubit from the world and releases its station
// memory slot. Destroying a qubit twice is an invariant violation.
func (q *Qubit) Destroy() error {
	if q.destroyed {
		return &DoubleDestroyError{Kind: "qubit", ID: q.id}
	}
	q.destroyed = true
	q.world.removeQubit(q)
	return nil
}

// Pair is an entangled resource between two stations. Pairs are created
// when a SourceEvent resolves or when a swap succeeds, and destroyed when
// consumed by a further swap or evaluated as a long-range result.
//
// ResourceCostMax and ResourceCostAdd accumulate the generation attempts
// spent on the pair across its swapping history, combined by max and by sum
// respectively when two pairs are merged.
type Pair struct {
	id       int
	Stations [2]*Station
	Qubits   [2]*Qubit
	State    *mat.Dense

	ResourceCostMax int
	ResourceCostAdd int

	world     *World
	destroyed bool
}

// ID returns the pair's world-unique identity.
func (p *Pair) ID() int { return p.id }

// Destroyed reports whether the pair has been destroyed.
func (p *Pair) Destroyed() bool { return p.destroyed }

// IsBetweenStations reports whether the pair connects a and b, in either
// order.
func (p *Pair) IsBetweenStations(a, b *Station) bool {
	return (p.Stations[0] == a && p.Stations[1] == b) ||
		(p.Stations[0] == b && p.Stations[1] == a)
}

// HasStation reports whether one end of the pair sits at s.
func (p *Pair) HasStation(s *Station) bool {
	return p.Stations[0] == s || p.Stations[1] == s
}

// OtherStation returns the end of the pair that is not s, or nil if s is
// not an end of this pair.
func (p *Pair) OtherStation(s *Station) *Station {
	switch s {
	case p.Stations[0]:
		return p.Stations[1]
	case p.Stations[1]:
		return p.Stations[0]
	}
	return nil
}

// Destroy destroys the pair's qubits and deregisters the pair from the
// world. Destroying a pair twice is an invariant violation.
func (p *Pair) Destroy() error {
	if p.destroyed {
		return &DoubleDestroyError{Kind: "pair", ID: p.id}
	}
	for _, q := range p.Qubits {
		if q.destroyed {
			continue
		}
		if err := q.Destroy(); err != nil {
			return err
		}
	}
	p.destroyed = true
	p.world.removePair(p)
	return nil
}
