// Package scenario builds simulation worlds from declarative experiment
// specs: station geometry on a curved Earth, per-link optical budgets, and
// the noise parameters of memories and detectors. Specs are loaded from
// YAML or taken from the built-in default, which reproduces the
// three-satellite, four-link downlink experiment.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the top-level scenario configuration.
// Loaded from YAML via Load(path); zero fields take defaults from Default.
type Spec struct {
	Version string `yaml:"version,omitempty"`
	Seed    int64  `yaml:"seed"`

	// NumMemories is the per-link capacity of stored pairs plus in-flight
	// generation trials.
	NumMemories int `yaml:"num_memories"`
	// TargetPairs is the stop condition: the run ends once this many
	// long-range pairs have been measured.
	TargetPairs int `yaml:"target_pairs"`

	// GroundDistanceM is the great-circle separation of the two ground
	// terminals, in metres.
	GroundDistanceM float64 `yaml:"ground_distance_m"`
	// OrbitalHeightM is the altitude of the relay satellites, in metres.
	OrbitalHeightM float64 `yaml:"orbital_height_m"`
	// SatelliteArcFractions places each relay satellite at the given
	// fraction of the ground arc, in chain order.
	SatelliteArcFractions []float64 `yaml:"satellite_arc_fractions,omitempty"`

	// SourceEfficiency is the intrinsic pair-emission efficiency of every
	// source, before channel losses.
	SourceEfficiency float64 `yaml:"source_efficiency"`
	// PreparationTimeS is the fixed per-trial state-preparation time.
	PreparationTimeS float64 `yaml:"preparation_time_s"`
	// DephasingTimeS is the memory dephasing time constant of every
	// station; 0 models noiseless memories.
	DephasingTimeS float64 `yaml:"dephasing_time_s"`
	// DarkCountProbability is the per-trial detector dark-count
	// probability at every station.
	DarkCountProbability float64 `yaml:"dark_count_probability"`
	// BSMIdeality is the Bell-measurement quality lambda of the swap
	// operation; unset means a perfect measurement.
	BSMIdeality float64 `yaml:"bsm_ideality,omitempty"`

	SenderApertureRadiusM   float64 `yaml:"sender_aperture_radius_m"`
	ReceiverApertureRadiusM float64 `yaml:"receiver_aperture_radius_m"`
	DivergenceHalfAngleRad  float64 `yaml:"divergence_half_angle_rad"`
}

// Default returns the reference scenario: 200 km ground separation, three
// satellites at 400 km altitude placed at 0.25/0.5/0.75 of the ground arc,
// two memories per link, 100 target pairs.
func Default() *Spec {
	return &Spec{
		Version:                 "1",
		Seed:                    42,
		NumMemories:             2,
		TargetPairs:             100,
		GroundDistanceM:         200e3,
		OrbitalHeightM:          400e3,
		SatelliteArcFractions:   []float64{0.25, 0.5, 0.75},
		SourceEfficiency:        1,
		PreparationTimeS:        0,
		DephasingTimeS:          1.0,
		DarkCountProbability:    0,
		BSMIdeality:             1,
		SenderApertureRadiusM:   0.15,
		ReceiverApertureRadiusM: 0.50,
		DivergenceHalfAngleRad:  1e-6,
	}
}

// Load reads a scenario spec from a YAML file, rejecting unknown fields,
// filling unset fields from Default, and validating the result.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario spec: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// applyDefaults fills zero-valued fields with the reference values. A
// bsm_ideality of 0 is treated as unset: a measurement that never succeeds
// is not a configuration anyone means.
func (s *Spec) applyDefaults() {
	def := Default()
	if s.Seed == 0 {
		s.Seed = def.Seed
	}
	if s.NumMemories == 0 {
		s.NumMemories = def.NumMemories
	}
	if s.TargetPairs == 0 {
		s.TargetPairs = def.TargetPairs
	}
	if s.GroundDistanceM == 0 {
		s.GroundDistanceM = def.GroundDistanceM
	}
	if s.OrbitalHeightM == 0 {
		s.OrbitalHeightM = def.OrbitalHeightM
	}
	if len(s.SatelliteArcFractions) == 0 {
		s.SatelliteArcFractions = def.SatelliteArcFractions
	}
	if s.SourceEfficiency == 0 {
		s.SourceEfficiency = def.SourceEfficiency
	}
	if s.BSMIdeality == 0 {
		s.BSMIdeality = def.BSMIdeality
	}
	if s.SenderApertureRadiusM == 0 {
		s.SenderApertureRadiusM = def.SenderApertureRadiusM
	}
	if s.ReceiverApertureRadiusM == 0 {
		s.ReceiverApertureRadiusM = def.ReceiverApertureRadiusM
	}
	if s.DivergenceHalfAngleRad == 0 {
		s.DivergenceHalfAngleRad = def.DivergenceHalfAngleRad
	}
}

// Validate checks that all fields in the spec are physically meaningful.
func (s *Spec) Validate() error {
	if s.NumMemories < 1 {
		return fmt.Errorf("num_memories must be positive, got %d", s.NumMemories)
	}
	if s.TargetPairs < 1 {
		return fmt.Errorf("target_pairs must be positive, got %d", s.TargetPairs)
	}
	if s.GroundDistanceM <= 0 {
		return fmt.Errorf("ground_distance_m must be positive, got %g", s.GroundDistanceM)
	}
	if s.OrbitalHeightM <= 0 {
		return fmt.Errorf("orbital_height_m must be positive, got %g", s.OrbitalHeightM)
	}
	if len(s.SatelliteArcFractions) == 0 {
		return fmt.Errorf("at least one relay satellite required")
	}
	prev := 0.0
	for i, f := range s.SatelliteArcFractions {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("satellite_arc_fractions[%d] must be in (0, 1), got %g", i, f)
		}
		if f <= prev {
			return fmt.Errorf("satellite_arc_fractions must be strictly increasing, got %v", s.SatelliteArcFractions)
		}
		prev = f
	}
	if s.SourceEfficiency <= 0 || s.SourceEfficiency > 1 {
		return fmt.Errorf("source_efficiency must be in (0, 1], got %g", s.SourceEfficiency)
	}
	if s.PreparationTimeS < 0 {
		return fmt.Errorf("preparation_time_s must be non-negative, got %g", s.PreparationTimeS)
	}
	if s.DephasingTimeS < 0 {
		return fmt.Errorf("dephasing_time_s must be non-negative, got %g", s.DephasingTimeS)
	}
	if s.DarkCountProbability < 0 || s.DarkCountProbability >= 1 {
		return fmt.Errorf("dark_count_probability must be in [0, 1), got %g", s.DarkCountProbability)
	}
	if s.BSMIdeality <= 0 || s.BSMIdeality > 1 {
		return fmt.Errorf("bsm_ideality must be in (0, 1], got %g", s.BSMIdeality)
	}
	if s.SenderApertureRadiusM <= 0 || s.ReceiverApertureRadiusM <= 0 {
		return fmt.Errorf("aperture radii must be positive")
	}
	if s.DivergenceHalfAngleRad <= 0 {
		return fmt.Errorf("divergence_half_angle_rad must be positive, got %g", s.DivergenceHalfAngleRad)
	}
	return nil
}
