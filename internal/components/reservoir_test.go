package components

import (
	"testing"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/pkg/eav"
)

// stubClimate is a fixed-value model.ClimateSource for component tests
// that need an evaporation or ET reading but don't exercise a driver.
type stubClimate struct {
	precip, temp, et, evap float64
}

func (c stubClimate) Precipitation(model.Date) float64 { return c.precip }
func (c stubClimate) Temperature(model.Date) float64   { return c.temp }
func (c stubClimate) ET(model.Date) float64            { return c.et }
func (c stubClimate) Evaporation(model.Date) float64   { return c.evap }

var _ model.ClimateSource = stubClimate{}

func testEAVTable(t *testing.T) *eav.Table {
	t.Helper()
	table, err := eav.NewTable([]eav.Row{
		{StorageM3: 0, ElevationM: 100.0, SurfaceAreaM2: 10000},
		{StorageM3: 500000, ElevationM: 105.0, SurfaceAreaM2: 20000},
		{StorageM3: 1000000, ElevationM: 110.0, SurfaceAreaM2: 30000},
	})
	if err != nil {
		t.Fatalf("eav.NewTable: %v", err)
	}
	return table
}

// TestReservoirSpillwayActivation exercises spec.md scenario 5: an EAV-mode
// reservoir whose inflow drives storage above its spillway crest
// elevation, checking that spill engages, storage respects its physical
// bounds, outflow is release+spill, and the water balance closes exactly.
func TestReservoirSpillwayActivation(t *testing.T) {
	r, err := NewReservoir("res", ReservoirConfig{
		InitialStorage:      950000,
		MaxStorage:          1000000,
		EAVTable:            testEAVTable(t),
		HasSpillway:         true,
		SpillwayElevationM:  108.0,
		SpillwayWidthM:      10.0,
		SpillwayCoefficient: 1.7,
	})
	if err != nil {
		t.Fatalf("NewReservoir: %v", err)
	}

	r.SetInputs(map[string]float64{"inflow": 200000, "release": 1000})
	prevStorage := r.storage

	climate := stubClimate{evap: 2.0}
	if err := r.Step(model.Date{}, climate); err != nil {
		t.Fatalf("Step: %v", err)
	}

	spill := r.Outputs()["spill"]
	if spill <= 0 {
		t.Fatalf("expected spillway to activate, got spill = %v", spill)
	}

	storage := r.Outputs()["storage"]
	if storage < 0 || storage > r.maxStorage {
		t.Fatalf("storage %v out of bounds [0, %v]", storage, r.maxStorage)
	}

	release := 1000.0
	evapLoss := r.Outputs()["evaporation_loss"]
	outflow := r.Outputs()["outflow"]
	if outflow != release+spill {
		t.Fatalf("outflow = %v, want release+spill = %v", outflow, release+spill)
	}

	gotDelta := storage - prevStorage
	wantDelta := 200000 - release - spill - evapLoss
	if diff := gotDelta - wantDelta; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("mass balance violated: storage moved by %v, want %v (inflow-release-spill-evap)", gotDelta, wantDelta)
	}
}

// TestReservoirClampsEvaporationWhenStarved matches the maintainer-flagged
// edge case: when storage+inflow can't cover release+evaporation,
// evaporation itself must be reduced (not just release), so the reported
// evaporation_loss never exceeds what the water balance actually allows.
func TestReservoirClampsEvaporationWhenStarved(t *testing.T) {
	r, err := NewReservoir("res", ReservoirConfig{
		InitialStorage: 10,
		MaxStorage:     1000,
		SurfaceArea:    1_000_000, // huge area so evaporation alone would exceed available water
	})
	if err != nil {
		t.Fatalf("NewReservoir: %v", err)
	}

	r.SetInputs(map[string]float64{"inflow": 5, "release": 1000})
	climate := stubClimate{evap: 1.0} // evapLoss = 1.0 * 1e6 / 1000 = 1000, far more than available (15)

	if err := r.Step(model.Date{}, climate); err != nil {
		t.Fatalf("Step: %v", err)
	}

	storage := r.Outputs()["storage"]
	evapLoss := r.Outputs()["evaporation_loss"]
	release := r.Outputs()["outflow"] // spill is 0 in simple mode below max_storage

	if storage != 0 {
		t.Fatalf("expected storage to bottom out at 0, got %v", storage)
	}
	if evapLoss > 15+1e-9 {
		t.Fatalf("evaporation_loss %v exceeds water actually available (15)", evapLoss)
	}

	gotDelta := storage - 10
	wantDelta := 5 - release - evapLoss
	if diff := gotDelta - wantDelta; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("mass balance violated: storage moved by %v, want %v", gotDelta, wantDelta)
	}
}

func TestReservoirSimpleModeSpillsAtMaxStorage(t *testing.T) {
	r, err := NewReservoir("res", ReservoirConfig{
		InitialStorage: 900,
		MaxStorage:     1000,
		SurfaceArea:    5000,
	})
	if err != nil {
		t.Fatalf("NewReservoir: %v", err)
	}

	r.SetInputs(map[string]float64{"inflow": 200})
	if err := r.Step(model.Date{}, stubClimate{}); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if got := r.Outputs()["storage"]; got != 1000 {
		t.Fatalf("storage = %v, want clamped to max_storage 1000", got)
	}
	if got := r.Outputs()["spill"]; got != 100 {
		t.Fatalf("spill = %v, want 100", got)
	}
}

func TestReservoirRejectsSpillwayWithoutEAVTable(t *testing.T) {
	_, err := NewReservoir("res", ReservoirConfig{
		MaxStorage:         1000,
		HasSpillway:        true,
		SpillwayElevationM: 10,
	})
	if err == nil {
		t.Fatal("expected configuration error for spillway without an eav_table")
	}
}
