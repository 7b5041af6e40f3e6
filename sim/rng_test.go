package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSubsystem_SameStream(t *testing.T) {
	// GIVEN two PartitionedRNGs with the same key
	a := NewPartitionedRNG(NewSimulationKey(42))
	b := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN both draw from the same subsystem
	// THEN the streams are identical
	ra, rb := a.ForSubsystem(SubsystemLink(0)), b.ForSubsystem(SubsystemLink(0))
	for i := 0; i < 100; i++ {
		if ra.Float64() != rb.Float64() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestPartitionedRNG_DifferentSubsystems_IndependentStreams(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	r0 := p.ForSubsystem(SubsystemLink(0))
	r1 := p.ForSubsystem(SubsystemLink(1))

	same := 0
	for i := 0; i < 100; i++ {
		if r0.Float64() == r1.Float64() {
			same++
		}
	}
	assert.Less(t, same, 100, "link streams must not be the same sequence")
}

func TestPartitionedRNG_ForSubsystem_CachesInstance(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(7))
	assert.Same(t, p.ForSubsystem("x"), p.ForSubsystem("x"))
	assert.Equal(t, NewSimulationKey(7), p.Key())
}

func TestGeometric_CertainSuccess_ReturnsOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, Geometric(rng, 1.0))
	}
}

func TestGeometric_AlwaysAtLeastOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if n := Geometric(rng, 0.3); n < 1 {
			t.Fatalf("Geometric returned %d, want >= 1", n)
		}
	}
}

func TestGeometric_MeanApproximatesInverseProbability(t *testing.T) {
	// GIVEN many samples at p=0.25
	rng := rand.New(rand.NewSource(99))
	const samples = 20000
	sum := 0
	for i := 0; i < samples; i++ {
		sum += Geometric(rng, 0.25)
	}

	// THEN the sample mean is near 1/p = 4
	mean := float64(sum) / samples
	assert.InDelta(t, 4.0, mean, 0.15)
}

func TestGeometric_InvalidProbability_Panics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { Geometric(rng, 0) })
	assert.Panics(t, func() { Geometric(rng, -0.5) })
}
