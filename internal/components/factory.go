package components

import (
	"fmt"
	"math"

	"github.com/basinsim/basinsim/internal/kernels"
	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
	"github.com/basinsim/basinsim/pkg/eav"
	"github.com/basinsim/basinsim/pkg/modeldef"
)

// New builds the concrete component named by def.Kind, reading its
// parameters from def.Params. Flat, prefixed parameter keys (snow_*,
// awbm_*, spillway_*) keep every component's configuration a plain
// scalar bag, sidestepping any nested-structure ambiguity in the
// parameter source.
func New(def modeldef.ComponentDefinition) (model.Component, error) {
	switch def.Kind {
	case "catchment":
		return newCatchmentFromDef(def)
	case "reservoir":
		return newReservoirFromDef(def)
	case "demand":
		return newDemandFromDef(def)
	case "diversion":
		return newDiversionFromDef(def)
	case "junction":
		return NewJunction(def.Name), nil
	case "pump":
		return newPumpFromDef(def)
	case "lagged_value":
		return newLaggedValueFromDef(def)
	default:
		return nil, &simerrors.ConfigurationError{
			Component: def.Name, Field: "kind",
			Reason: fmt.Sprintf("unknown component kind %q", def.Kind),
		}
	}
}

func newCatchmentFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params
	areaKM2, err := p.FloatMin("area_km2", 0)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "area_km2", Reason: err.Error()}
	}

	c1, err := p.FloatRangeOr("awbm_c1", 7, 0, math.MaxFloat64)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_c1", Reason: err.Error()}
	}
	c2, err := p.FloatRangeOr("awbm_c2", 70, 0, math.MaxFloat64)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_c2", Reason: err.Error()}
	}
	c3, err := p.FloatRangeOr("awbm_c3", 150, 0, math.MaxFloat64)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_c3", Reason: err.Error()}
	}
	if c1 <= 0 || c2 <= 0 || c3 <= 0 {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_c1/c2/c3", Reason: "AWBM store capacities must be positive"}
	}
	bfi, err := p.FloatRangeOr("awbm_bfi", 0.35, 0, 1)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_bfi", Reason: err.Error()}
	}
	ks, err := p.FloatRangeOr("awbm_ks", 0.35, 0, 1)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_ks", Reason: err.Error()}
	}
	kb, err := p.FloatRangeOr("awbm_kb", 0.95, 0, 1)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "awbm_kb", Reason: err.Error()}
	}

	cfg := CatchmentConfig{
		AreaKM2:       areaKM2,
		SnowEnabled:   p.Bool("snow_enabled"),
		ElevationM:    p.FloatOr("elevation_m", 0),
		RefElevationM: p.FloatOr("ref_elevation_m", 0),
		Latitude:      p.FloatOr("latitude", 0),
		AWBMParams: kernels.AWBMParams{
			CVec: [3]float64{c1, c2, c3},
			BFI:  bfi,
			Ks:   ks,
			Kb:   kb,
			A1:   p.FloatOr("awbm_a1", 0.134),
			A2:   p.FloatOr("awbm_a2", 0.433),
		},
	}

	if cfg.SnowEnabled {
		plwhc, err := p.FloatRangeOr("snow_plwhc", 0.04, 0, 1)
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "snow_plwhc", Reason: err.Error()}
		}
		cfg.SnowParams = kernels.Snow17Params{
			MFMax:     p.FloatOr("snow_mfmax", 1.6),
			MFMin:     p.FloatOr("snow_mfmin", 0.6),
			MBase:     p.FloatOr("snow_mbase", 0.0),
			PXTemp1:   p.FloatOr("snow_pxtemp1", 0.0),
			PXTemp2:   p.FloatOr("snow_pxtemp2", 1.0),
			SCF:       p.FloatOr("snow_scf", 1.0),
			NMF:       p.FloatOr("snow_nmf", 0.15),
			PLWHC:     plwhc,
			UAdj:      p.FloatOr("snow_uadj", 0.05),
			TIPM:      p.FloatOr("snow_tipm", 0.15),
			LapseRate: p.FloatOr("snow_lapse_rate", 0.006),
		}
	}

	return NewCatchment(def.Name, cfg)
}

func newReservoirFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params
	initialStorage, err := p.Float("initial_storage")
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "initial_storage", Reason: err.Error()}
	}
	maxStorage, err := p.FloatMin("max_storage", 0)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "max_storage", Reason: err.Error()}
	}

	cfg := ReservoirConfig{
		InitialStorage: initialStorage,
		MaxStorage:     maxStorage,
		SurfaceArea:    p.FloatOr("surface_area", 0),
	}

	if eavPath := p.StringOr("eav_table", ""); eavPath != "" {
		table, err := eav.LoadCSV(eavPath)
		if err != nil {
			return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "eav_table", Reason: err.Error()}
		}
		cfg.EAVTable = table
	}

	if _, ok := p["spillway_elevation"]; ok {
		cfg.HasSpillway = true
		cfg.SpillwayElevationM, _ = p.Float("spillway_elevation")
		cfg.SpillwayWidthM = p.FloatOr("spillway_width", 10.0)
		cfg.SpillwayCoefficient = p.FloatOr("spillway_coefficient", 1.7)
	}

	return NewReservoir(def.Name, cfg)
}

func newDemandFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params
	mode := DemandMunicipal
	if p.StringOr("mode", "municipal") == "agricultural" {
		mode = DemandAgricultural
	}

	return NewDemand(def.Name, DemandConfig{
		Mode:               mode,
		Population:         p.FloatOr("population", 0),
		PerCapitaDemandLPD: p.FloatOr("per_capita_demand_lpd", 0),
		OutdoorAreaHA:      p.FloatOr("outdoor_area_ha", 0),
		OutdoorCoefficient: p.FloatOr("outdoor_coefficient", 0),
		IrrigatedAreaHA:    p.FloatOr("irrigated_area_ha", 0),
		CropCoefficient:    p.FloatOr("crop_coefficient", 0),
	}), nil
}

func newDiversionFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params

	cfg := DiversionConfig{
		MaxDiversion: p.FloatOr("max_diversion", 0),
		InstreamFlow: p.FloatOr("instream_flow", 0),
	}

	raw, ok := p["outflows"]
	if ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "outflows", Reason: "must be a list"}
		}
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &simerrors.ConfigurationError{
					Component: def.Name, Field: "outflows",
					Reason: fmt.Sprintf("entry %d is not a mapping", i),
				}
			}
			name, _ := m["name"].(string)
			spec := OutflowSpec{Name: name}
			if priority, ok := toInt(m["priority"]); ok {
				spec.Priority = priority
			}
			if demand, ok := toFloatAny(m["demand"]); ok {
				spec.DemandM3 = demand
			}
			cfg.Outflows = append(cfg.Outflows, spec)
		}
	}

	return NewDiversion(def.Name, cfg), nil
}

func newPumpFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params

	processVar, err := p.String("process_variable_in")
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "process_variable_in", Reason: err.Error()}
	}

	cfg := PumpConfig{
		Capacity:          p.FloatOr("capacity", 0),
		ProcessVariableIn: processVar,
		Deadband:          p.FloatOr("deadband", 0),
		Kp:                p.FloatOr("kp", 0),
	}

	switch p.StringOr("control_mode", "deadband") {
	case "proportional":
		cfg.ControlMode = PumpProportional
	default:
		cfg.ControlMode = PumpDeadband
	}

	if v, ok := p["target"]; ok {
		if f, ok := toFloatAny(v); ok {
			cfg.TargetConstant = &f
		}
	}

	if raw, ok := p["target_schedule"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "target_schedule", Reason: "must be a list"}
		}
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &simerrors.ConfigurationError{
					Component: def.Name, Field: "target_schedule",
					Reason: fmt.Sprintf("entry %d is not a mapping", i),
				}
			}
			doy, _ := toInt(m["day_of_year"])
			value, _ := toFloatAny(m["value"])
			cfg.TargetSchedule = append(cfg.TargetSchedule, TargetPoint{DayOfYear: doy, Value: value})
		}
	}

	return NewPump(def.Name, cfg), nil
}

func newLaggedValueFromDef(def modeldef.ComponentDefinition) (model.Component, error) {
	p := def.Params
	return NewLaggedValue(def.Name, p.FloatOr("initial_value", 0)), nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func toFloatAny(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
