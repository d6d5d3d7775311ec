package components

import (
	"testing"

	"github.com/basinsim/basinsim/pkg/modeldef"
)

func TestNewBuildsEachKind(t *testing.T) {
	cases := []struct {
		name   string
		kind   string
		params modeldef.ComponentParams
	}{
		{"c1", "catchment", modeldef.ComponentParams{"area_km2": 100.0}},
		{"r1", "reservoir", modeldef.ComponentParams{"initial_storage": 1000.0, "max_storage": 5000.0, "surface_area": 20000.0}},
		{"d1", "demand", modeldef.ComponentParams{"mode": "municipal", "population": 1000.0, "per_capita_demand_lpd": 150.0}},
		{"v1", "diversion", modeldef.ComponentParams{"max_diversion": 10.0}},
		{"j1", "junction", modeldef.ComponentParams{}},
		{"p1", "pump", modeldef.ComponentParams{"process_variable_in": "level", "capacity": 5.0, "target": 2.0}},
		{"l1", "lagged_value", modeldef.ComponentParams{"initial_value": 0.0}},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			comp, err := New(modeldef.ComponentDefinition{Name: tc.name, Kind: tc.kind, Params: tc.params})
			if err != nil {
				t.Fatalf("New(%s): %v", tc.kind, err)
			}
			if comp.Name() != tc.name {
				t.Errorf("Name() = %q, want %q", comp.Name(), tc.name)
			}
		})
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "x", Kind: "nonsense"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestNewDiversionParsesOutflowList(t *testing.T) {
	params := modeldef.ComponentParams{
		"max_diversion": 50.0,
		"instream_flow": 5.0,
		"outflows": []any{
			map[string]any{"name": "canal_a", "priority": 1, "demand": 20.0},
			map[string]any{"name": "canal_b", "priority": 2, "demand": 40.0},
		},
	}
	comp, err := New(modeldef.ComponentDefinition{Name: "v2", Kind: "diversion", Params: params})
	if err != nil {
		t.Fatalf("New(diversion): %v", err)
	}
	div, ok := comp.(*Diversion)
	if !ok {
		t.Fatalf("expected *Diversion, got %T", comp)
	}
	if len(div.outflows) != 2 {
		t.Fatalf("expected 2 outflows, got %d", len(div.outflows))
	}
	if div.outflows[0].Name != "canal_a" || div.outflows[1].Name != "canal_b" {
		t.Fatalf("unexpected outflow order: %+v", div.outflows)
	}
}

func TestNewReservoirRequiresStorageFields(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "r2", Kind: "reservoir", Params: modeldef.ComponentParams{}})
	if err == nil {
		t.Fatal("expected error for missing initial_storage/max_storage")
	}
}

func TestNewCatchmentRejectsNonPositiveArea(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "c2", Kind: "catchment", Params: modeldef.ComponentParams{"area_km2": 0.0}})
	if err == nil {
		t.Fatal("expected error for non-positive area_km2")
	}
}

func TestNewCatchmentRejectsOutOfRangeAWBMFraction(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "c3", Kind: "catchment", Params: modeldef.ComponentParams{
		"area_km2": 10.0, "awbm_bfi": 1.5,
	}})
	if err == nil {
		t.Fatal("expected error for awbm_bfi outside [0, 1]")
	}
}

func TestNewCatchmentRejectsNonPositiveAWBMCapacity(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "c4", Kind: "catchment", Params: modeldef.ComponentParams{
		"area_km2": 10.0, "awbm_c1": 0.0,
	}})
	if err == nil {
		t.Fatal("expected error for a non-positive AWBM store capacity")
	}
}

func TestNewReservoirRejectsNonPositiveMaxStorage(t *testing.T) {
	_, err := New(modeldef.ComponentDefinition{Name: "r3", Kind: "reservoir", Params: modeldef.ComponentParams{
		"initial_storage": 0.0, "max_storage": 0.0,
	}})
	if err == nil {
		t.Fatal("expected error for non-positive max_storage")
	}
}
