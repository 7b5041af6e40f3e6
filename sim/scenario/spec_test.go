package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp spec: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_PartialSpec_FillsDefaults(t *testing.T) {
	// GIVEN a spec that only overrides the target and the seed
	path := writeSpec(t, "seed: 7\ntarget_pairs: 10\n")

	// WHEN it is loaded
	spec, err := Load(path)
	require.NoError(t, err)

	// THEN the overridden fields stick and the rest match the defaults
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 10, spec.TargetPairs)
	def := Default()
	assert.Equal(t, def.NumMemories, spec.NumMemories)
	assert.Equal(t, def.GroundDistanceM, spec.GroundDistanceM)
	assert.Equal(t, def.SatelliteArcFractions, spec.SatelliteArcFractions)
	assert.Equal(t, def.BSMIdeality, spec.BSMIdeality)
}

func TestLoad_UnknownField_Fails(t *testing.T) {
	path := writeSpec(t, "target_pairs: 10\nwavelength_nm: 780\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile_Fails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := map[string]func(*Spec){
		"zero memories":          func(s *Spec) { s.NumMemories = -1 },
		"negative target":        func(s *Spec) { s.TargetPairs = -5 },
		"zero ground distance":   func(s *Spec) { s.GroundDistanceM = -1 },
		"fraction out of range":  func(s *Spec) { s.SatelliteArcFractions = []float64{0.5, 1.5} },
		"fractions not ordered":  func(s *Spec) { s.SatelliteArcFractions = []float64{0.75, 0.25} },
		"efficiency above one":   func(s *Spec) { s.SourceEfficiency = 1.5 },
		"dark count of one":      func(s *Spec) { s.DarkCountProbability = 1 },
		"negative dephasing":     func(s *Spec) { s.DephasingTimeS = -2 },
		"bsm above one":          func(s *Spec) { s.BSMIdeality = 1.1 },
		"zero divergence":        func(s *Spec) { s.DivergenceHalfAngleRad = 0 },
	}
	for name, mutate := range cases {
		spec := Default()
		mutate(spec)
		if err := spec.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid spec", name)
		}
	}
}
