package scenario

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/repeater-sim/repeater-sim/sim"
	"github.com/repeater-sim/repeater-sim/sim/quantum"
)

// Build constructs a fresh world and chain protocol from the spec: ground
// terminals at the ends of the ground arc, one relay satellite per arc
// fraction, and one entanglement source per adjacent station pair with its
// link budget derived from the geometry. Setup has not yet been called on
// the returned protocol.
func Build(spec *Spec) (*sim.World, *sim.ChainProtocol, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}

	w := sim.NewWorld()
	prng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))

	var memoryNoise sim.MemoryNoiseFunc
	if spec.DephasingTimeS > 0 {
		memoryNoise = quantum.DephasingChannel(spec.DephasingTimeS)
	}

	// Stations along the Earth cross-section: ground terminals on the
	// surface, satellites at orbital height above their arc position.
	arcAngle := spec.GroundDistanceM / AverageEarthRadiusM
	stations := make([]*sim.Station, 0, len(spec.SatelliteArcFractions)+2)
	stations = append(stations, newStation(w, positionFromAngle(AverageEarthRadiusM, 0), memoryNoise, spec))
	for _, frac := range spec.SatelliteArcFractions {
		pos := positionFromAngle(AverageEarthRadiusM+spec.OrbitalHeightM, frac*arcAngle)
		stations = append(stations, newStation(w, pos, memoryNoise, spec))
	}
	stations = append(stations, newStation(w, positionFromAngle(AverageEarthRadiusM, arcAngle), memoryNoise, spec))

	sources := make([]*sim.Source, 0, len(stations)-1)
	for i := 0; i < len(stations)-1; i++ {
		left, right := stations[i], stations[i+1]
		chance := arrivalChance(spec, i, len(stations))
		logrus.Debugf("link %d arrival chance: %g", i, chance)

		// The source sits at a satellite end of its link; for downlinks
		// that is the satellite, for inter-satellite links either end
		// gives the same trial geometry.
		srcPos := right.Position
		if i > 0 {
			srcPos = left.Position
		}
		src := w.NewSource(srcPos, left, right,
			timeDistribution(spec, chance, prng.ForSubsystem(sim.SubsystemLink(i))),
			stateGeneration(spec, chance))
		sources = append(sources, src)
	}

	protocol := sim.NewChainProtocol(w, spec.NumMemories, stations, sources)
	protocol.BSMIdeality = spec.BSMIdeality
	return w, protocol, nil
}

func newStation(w *sim.World, pos sim.Position, noise sim.MemoryNoiseFunc, spec *Spec) *sim.Station {
	st := w.NewStation("", pos)
	st.MemoryNoise = noise
	st.DarkCountProbability = spec.DarkCountProbability
	return st
}

// positionFromAngle maps a radius and arc angle to cross-section plane
// coordinates.
func positionFromAngle(radius, angle float64) sim.Position {
	return sim.Position{X: radius * math.Sin(angle), Y: radius * math.Cos(angle)}
}

// arrivalChance computes the photon arrival probability of link i from the
// scenario geometry: diffraction loss over the slant distance, plus
// atmospheric loss on the two links that cross the atmosphere (the first
// and last of the chain).
func arrivalChance(spec *Spec, i, numStations int) float64 {
	fracs := spec.SatelliteArcFractions
	switch i {
	case 0:
		groundDist := fracs[0] * spec.GroundDistanceM
		slant := SatDistCurved(groundDist, spec.OrbitalHeightM)
		elev := ElevationCurved(groundDist, spec.OrbitalHeightM)
		return EtaAtmosphere(elev) * etaDif(spec, slant)
	case numStations - 2:
		groundDist := (1 - fracs[len(fracs)-1]) * spec.GroundDistanceM
		slant := SatDistCurved(groundDist, spec.OrbitalHeightM)
		elev := ElevationCurved(groundDist, spec.OrbitalHeightM)
		return EtaAtmosphere(elev) * etaDif(spec, slant)
	default:
		// Satellite-to-satellite: chord between the two orbital positions.
		arcAngle := spec.GroundDistanceM / AverageEarthRadiusM
		a := positionFromAngle(AverageEarthRadiusM+spec.OrbitalHeightM, fracs[i-1]*arcAngle)
		b := positionFromAngle(AverageEarthRadiusM+spec.OrbitalHeightM, fracs[i]*arcAngle)
		return etaDif(spec, a.DistanceTo(b))
	}
}

func etaDif(spec *Spec, distance float64) float64 {
	return EtaDiffraction(distance, spec.DivergenceHalfAngleRad, spec.SenderApertureRadiusM, spec.ReceiverApertureRadiusM)
}

// timeDistribution builds the per-link trial sampler: a geometric number
// of attempts at the effective heralding probability, each attempt costing
// the preparation time plus the round-trip light time to the farther
// target station.
func timeDistribution(spec *Spec, chance float64, rng *rand.Rand) sim.TimeDistribution {
	eta := spec.SourceEfficiency * chance
	etaEffective := ClickProbability(eta, spec.DarkCountProbability)
	return func(s *sim.Source) (float64, int) {
		commDist := max(
			s.Position.DistanceTo(s.TargetStations[0].Position),
			s.Position.DistanceTo(s.TargetStations[1].Position),
		)
		trialTime := spec.PreparationTimeS + 2*commDist/sim.SpeedOfLight
		attempts := sim.Geometric(rng, etaEffective)
		return float64(attempts) * trialTime, attempts
	}
}

// stateGeneration builds the per-link state producer: the ideal Bell state
// degraded by each target station's memory dephasing over the storage time
// and by its detector's dark counts.
func stateGeneration(spec *Spec, chance float64) sim.StateGeneration {
	eta := spec.SourceEfficiency * chance
	return func(s *sim.Source) *mat.Dense {
		state := quantum.PhiPlus()
		commDist := max(
			s.Position.DistanceTo(s.TargetStations[0].Position),
			s.Position.DistanceTo(s.TargetStations[1].Position),
		)
		storageTime := 2 * commDist / sim.SpeedOfLight
		for idx, st := range s.TargetStations {
			if st.MemoryNoise != nil {
				// Dephasing accrued while the other qubit was travelling.
				state = st.MemoryNoise(state, idx, storageTime)
			}
			if st.DarkCountProbability > 0 {
				state = quantum.WhiteNoise(state, idx, AlphaOfEta(eta, st.DarkCountProbability))
			}
		}
		return state
	}
}
