package engine

import (
	"testing"

	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/pkg/modeldef"
)

func TestBuildClimateWiresStochasticDrivers(t *testing.T) {
	def := modeldef.ClimateDefinition{
		Precipitation: modeldef.DriverDefinition{
			Kind: "stochastic", Seed: 1,
			Params: map[string]any{"distribution": "gamma", "alpha": 2.0, "beta": 3.0},
		},
		Temperature: modeldef.DriverDefinition{
			Kind: "stochastic", Seed: 2,
			Params: map[string]any{"distribution": "normal", "mean": 10.0, "stddev": 3.0},
		},
		ET: modeldef.DriverDefinition{
			Kind: "stochastic", Seed: 3,
			Params: map[string]any{"distribution": "normal", "mean": 4.0, "stddev": 1.0},
		},
	}

	start, err := model.ParseDate("2000-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	reg, err := buildClimate(def, start)
	if err != nil {
		t.Fatalf("buildClimate: %v", err)
	}

	if err := reg.Refresh(start); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if p := reg.Precipitation(start); p < 0 {
		t.Fatalf("expected non-negative gamma-distributed precipitation, got %v", p)
	}
}

func wgenDef(pww, pwd float64) modeldef.DriverDefinition {
	monthly := func(v float64) []any {
		out := make([]any, 12)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return modeldef.DriverDefinition{
		Kind: "wgen", Seed: 7, Latitude: 40.0,
		Params: map[string]any{
			"pww": monthly(pww), "pwd": monthly(pwd),
			"alpha": monthly(2.0), "beta": monthly(3.0),
		},
	}
}

func TestBuildClimateWiresWGENTriplet(t *testing.T) {
	def := modeldef.ClimateDefinition{
		Precipitation: wgenDef(0.5, 0.3),
		Temperature:   wgenDef(0.5, 0.3),
		ET:            wgenDef(0.5, 0.3),
	}
	start, err := model.ParseDate("2000-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, err := buildClimate(def, start); err != nil {
		t.Fatalf("buildClimate: %v", err)
	}
}

func TestBuildClimateRejectsOutOfRangeWGENProbability(t *testing.T) {
	def := modeldef.ClimateDefinition{
		Precipitation: wgenDef(1.5, 0.3), // pww out of [0, 1]
		Temperature:   wgenDef(0.5, 0.3),
		ET:            wgenDef(0.5, 0.3),
	}
	start, err := model.ParseDate("2000-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, err := buildClimate(def, start); err == nil {
		t.Fatal("expected error for pww outside [0, 1]")
	}
}

func TestBuildClimateRejectsUnknownDistribution(t *testing.T) {
	def := modeldef.ClimateDefinition{
		Precipitation: modeldef.DriverDefinition{Kind: "stochastic", Params: map[string]any{"distribution": "weibull"}},
		Temperature:   modeldef.DriverDefinition{Kind: "stochastic", Params: map[string]any{"distribution": "normal"}},
		ET:            modeldef.DriverDefinition{Kind: "stochastic", Params: map[string]any{"distribution": "normal"}},
	}
	start, err := model.ParseDate("2000-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, err := buildClimate(def, start); err == nil {
		t.Fatal("expected error for unsupported distribution")
	}
}
