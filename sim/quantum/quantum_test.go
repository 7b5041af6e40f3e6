package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestPhiPlus_IsNormalizedWithUnitFidelity(t *testing.T) {
	rho := PhiPlus()
	assert.InDelta(t, 1.0, Trace(rho), 1e-12)
	assert.InDelta(t, 1.0, Fidelity(rho), 1e-12)
}

func TestMaximallyMixed_FidelityIsQuarter(t *testing.T) {
	assert.InDelta(t, 0.25, Fidelity(MaximallyMixed()), 1e-12)
}

func TestZNoise_FullDephasing_HalvesFidelity(t *testing.T) {
	// GIVEN the perfect Bell state
	// WHEN one qubit fully dephases (epsilon = 1/2)
	rho := ZNoise(PhiPlus(), 0, 0.5)

	// THEN fidelity drops to 1/2 and the state stays normalized
	assert.InDelta(t, 0.5, Fidelity(rho), 1e-12)
	assert.InDelta(t, 1.0, Trace(rho), 1e-12)
}

func TestZNoise_ZeroStrength_IsIdentity(t *testing.T) {
	rho := ZNoise(PhiPlus(), 1, 0)
	assert.InDelta(t, 1.0, Fidelity(rho), 1e-12)
}

func TestPauliChannels_PreserveTrace(t *testing.T) {
	for name, out := range map[string]*mat.Dense{
		"x": XNoise(PhiPlus(), 0, 0.3),
		"y": YNoise(PhiPlus(), 1, 0.3),
		"z": ZNoise(PhiPlus(), 0, 0.3),
	} {
		if math.Abs(Trace(out)-1) > 1e-12 {
			t.Errorf("%s noise broke normalization: trace = %g", name, Trace(out))
		}
	}
}

func TestWhiteNoise_AlphaOne_IsIdentity(t *testing.T) {
	rho := WhiteNoise(PhiPlus(), 0, 1)
	assert.InDelta(t, 1.0, Fidelity(rho), 1e-12)
}

func TestWhiteNoise_AlphaZero_DestroysCorrelations(t *testing.T) {
	// WHEN one qubit is fully replaced by the mixed state
	rho := WhiteNoise(PhiPlus(), 1, 0)

	// THEN the Bell overlap collapses to 1/4 and trace is preserved
	assert.InDelta(t, 0.25, Fidelity(rho), 1e-12)
	assert.InDelta(t, 1.0, Trace(rho), 1e-12)
}

func TestPartialTrace_OfBellState_IsMaximallyMixed(t *testing.T) {
	for qubit := 0; qubit < 2; qubit++ {
		reduced := PartialTrace(PhiPlus(), qubit)
		assert.InDelta(t, 0.5, reduced.At(0, 0), 1e-12)
		assert.InDelta(t, 0.5, reduced.At(1, 1), 1e-12)
		assert.InDelta(t, 0.0, reduced.At(0, 1), 1e-12)
		assert.InDelta(t, 0.0, reduced.At(1, 0), 1e-12)
	}
}

func TestSwapQubits_ReversesProductState(t *testing.T) {
	// GIVEN |01><01|
	rho := mat.NewDense(Dim, Dim, nil)
	rho.Set(1, 1, 1)

	// WHEN the qubits are exchanged
	out := SwapQubits(rho)

	// THEN the state is |10><10|
	assert.InDelta(t, 1.0, out.At(2, 2), 1e-12)
	assert.InDelta(t, 0.0, out.At(1, 1), 1e-12)
}

func TestDephasingEpsilon_Limits(t *testing.T) {
	assert.InDelta(t, 0.0, DephasingEpsilon(0, 1), 1e-12)
	assert.InDelta(t, 0.5, DephasingEpsilon(1e9, 1), 1e-9)
	// One time constant: (1 - 1/e)/2.
	assert.InDelta(t, (1-math.Exp(-1))/2, DephasingEpsilon(1, 1), 1e-12)
}

func TestSwap_PerfectInputs_YieldPerfectOutput(t *testing.T) {
	out := Swap(PhiPlus(), PhiPlus(), 1)
	assert.InDelta(t, 1.0, Fidelity(out), 1e-12)
	assert.InDelta(t, 1.0, Trace(out), 1e-12)
}

func TestSwap_ZeroIdeality_YieldsMaximallyMixed(t *testing.T) {
	out := Swap(PhiPlus(), PhiPlus(), 0)
	assert.InDelta(t, 0.25, Fidelity(out), 1e-12)
}

func TestSwap_DephasedInputs_ComposeFidelity(t *testing.T) {
	// GIVEN two Bell pairs dephased to fidelities F1 and F2
	e1, e2 := 0.1, 0.2
	left := ZNoise(PhiPlus(), 0, e1)
	right := ZNoise(PhiPlus(), 0, e2)
	f1, f2 := Fidelity(left), Fidelity(right)

	// WHEN they are swapped
	out := Swap(left, right, 1)

	// THEN the output fidelity follows the dephasing composition rule
	// F = F1 F2 + (1-F1)(1-F2)
	want := f1*f2 + (1-f1)*(1-f2)
	assert.InDelta(t, want, Fidelity(out), 1e-12)
	assert.InDelta(t, 1.0, Trace(out), 1e-12)
}
