package kernels

import "testing"

func standardAWBMParams() AWBMParams {
	return AWBMParams{
		CVec: [3]float64{7, 70, 150},
		BFI:  0.35,
		Ks:   0.35,
		Kb:   0.95,
		A1:   0.134,
		A2:   0.433,
	}
}

func TestAWBMStepSaturatedStorm(t *testing.T) {
	params := standardAWBMParams()
	state := AWBMState{SS1: 7, SS2: 70, SS3: 150, SSurf: 0, BBase: 0}

	newState, out := AWBMStep(AWBMInputs{PrecipMM: 100, PETMM: 1}, params, state)

	if out.ExcessMM <= 0 {
		t.Fatalf("expected positive excess on a saturated storm, got %v", out.ExcessMM)
	}
	if out.RunoffMM <= 0 || out.RunoffMM >= out.ExcessMM {
		t.Fatalf("expected 0 < RunoffMM < ExcessMM, got RunoffMM=%v ExcessMM=%v", out.RunoffMM, out.ExcessMM)
	}
	if newState.SS1 < 0 || newState.SS2 < 0 || newState.SS3 < 0 {
		t.Fatalf("surface stores must stay non-negative, got %+v", newState)
	}
	if newState.SSurf <= 0 {
		t.Fatalf("expected the surface routing store to receive inflow, got %v", newState.SSurf)
	}
}

func TestAWBMMassBalanceOverMonth(t *testing.T) {
	params := standardAWBMParams()
	state := AWBMState{}

	precip := make([]float64, 30)
	for i := range precip {
		if i%4 == 0 {
			precip[i] = 15
		}
	}
	const pet = 2.0

	var totalPrecip, totalPET, totalRunoff float64
	for _, p := range precip {
		var out AWBMOutputs
		state, out = AWBMStep(AWBMInputs{PrecipMM: p, PETMM: pet}, params, state)
		totalPrecip += p
		totalPET += pet
		totalRunoff += out.RunoffMM

		if state.SS1 < 0 || state.SS2 < 0 || state.SS3 < 0 || state.SSurf < 0 || state.BBase < 0 {
			t.Fatalf("state went negative: %+v", state)
		}
	}

	storedAtEnd := state.SS1 + state.SS2 + state.SS3 + state.SSurf + state.BBase
	balance := totalPrecip - totalPET - totalRunoff - storedAtEnd

	// Actual ET is capped by what each store holds, so the PET term is an
	// upper bound on water lost to ET; the residual equals actual ET minus
	// PET and so lies between -totalPET and zero.
	if balance > 1e-6 || balance < -totalPET-1e-6 {
		t.Fatalf("mass balance residual out of range: %v (precip=%v pet=%v runoff=%v stored=%v)",
			balance, totalPrecip, totalPET, totalRunoff, storedAtEnd)
	}
}

func TestAWBMRoutingStoreDischargesBelowThreshold(t *testing.T) {
	params := standardAWBMParams()
	state := AWBMState{SSurf: 0.03, BBase: 0.02}

	newState, out := AWBMStep(AWBMInputs{PrecipMM: 0, PETMM: 0}, params, state)

	if newState.SSurf != 0 {
		t.Errorf("surface store below threshold should drain entirely, got %v", newState.SSurf)
	}
	if newState.BBase != 0 {
		t.Errorf("baseflow store below threshold should drain entirely, got %v", newState.BBase)
	}
	if !almostEqual(out.RunoffMM, 0.05) {
		t.Errorf("RunoffMM = %v, want 0.05", out.RunoffMM)
	}
}
