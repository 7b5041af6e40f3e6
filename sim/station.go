package sim

import (
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// MemoryNoiseFunc applies time-dependent storage noise to one qubit of a
// two-qubit state: the noise a quantum memory accrues while holding its
// half of a pair for duration t. Implementations live outside the engine
// (see sim/quantum.DephasingChannel).
type MemoryNoiseFunc func(rho *mat.Dense, qubit int, t float64) *mat.Dense

// Station is a node of the repeater chain: a ground terminal or a relay
// satellite. Stations are immutable once constructed apart from the role
// label the protocol assigns during Setup, and live for the whole
// simulation.
type Station struct {
	id       int
	Label    string
	Position Position

	// MemoryNoise is the storage-noise channel of this station's quantum
	// memory. nil means a noiseless memory.
	MemoryNoise MemoryNoiseFunc

	// DarkCountProbability is the per-trial photon dark-count probability
	// of this station's detector. 0 disables the dark-count correction.
	DarkCountProbability float64
}

// ID returns the station's world-unique identity.
func (s *Station) ID() int { return s.id }

func (s *Station) String() string {
	if s.Label != "" {
		return s.Label
	}
	return "station-" + strconv.Itoa(s.id)
}
