package engine

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/basinsim/basinsim/internal/drivers"
	"github.com/basinsim/basinsim/internal/kernels"
	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/pkg/modeldef"
)

// buildClimate assembles a driver registry from a climate definition.
// precipitation, temperature, and et must each resolve to a driver;
// evaporation is optional. WGEN's correlated triplet must be constructed
// together, so "wgen" is accepted only when all three required slots use
// it: buildClimate then wires all three from one generator, reading the
// parameters, seed, and start_wet flag from the precipitation slot. A
// "wgen" kind on only some of the slots is rejected by buildDriver.
func buildClimate(def modeldef.ClimateDefinition, startDate model.Date) (*drivers.Registry, error) {
	if def.Precipitation.Kind == "wgen" && def.Temperature.Kind == "wgen" && def.ET.Kind == "wgen" {
		params, etParams, err := wgenParamsFrom(def.Precipitation)
		if err != nil {
			return nil, err
		}
		precip, temp, et := drivers.NewWGENClimateDrivers(def.Precipitation.Seed, def.Precipitation.StartWet, startDate, params, etParams)
		reg := drivers.NewRegistry(precip, temp, et)
		return withOptionalEvaporation(reg, def.Evaporation)
	}

	precip, err := buildDriver("precipitation", def.Precipitation)
	if err != nil {
		return nil, err
	}
	temp, err := buildDriver("temperature", def.Temperature)
	if err != nil {
		return nil, err
	}
	et, err := buildDriver("et", def.ET)
	if err != nil {
		return nil, err
	}

	reg := drivers.NewRegistry(precip, temp, et)
	return withOptionalEvaporation(reg, def.Evaporation)
}

func withOptionalEvaporation(reg *drivers.Registry, def *modeldef.DriverDefinition) (*drivers.Registry, error) {
	if def == nil {
		return reg, nil
	}
	evap, err := buildDriver("evaporation", *def)
	if err != nil {
		return nil, err
	}
	return reg.WithEvaporation(evap), nil
}

func buildDriver(name string, def modeldef.DriverDefinition) (drivers.Driver, error) {
	switch def.Kind {
	case "timeseries":
		return drivers.LoadCSVTimeSeriesDriver(name, def.Path, def.Column)
	case "stochastic":
		return newStochasticDriver(name, def)
	default:
		return nil, fmt.Errorf("climate driver %q: unsupported kind %q outside a full wgen triplet", name, def.Kind)
	}
}

// newStochasticDriver builds a parametric driver from a distribution
// field (normal or gamma) and its parameters, seeded deterministically
// from def.Seed. A gamma draw is never negative, matching the kernel's
// no-negative-rainfall convention; a normal draw is not clamped.
func newStochasticDriver(name string, def modeldef.DriverDefinition) (drivers.Driver, error) {
	p := modeldef.ComponentParams(def.Params)
	switch p.StringOr("distribution", "normal") {
	case "gamma":
		alpha := p.FloatOr("alpha", 1.0)
		beta := p.FloatOr("beta", 1.0)
		return drivers.NewStochasticDriver(def.Seed, func(r *rand.Rand) float64 {
			g := distuv.Gamma{Alpha: alpha, Beta: 1.0 / beta, Src: r}
			return g.Rand()
		}), nil
	case "normal":
		mean := p.FloatOr("mean", 0)
		stddev := p.FloatOr("stddev", 1)
		return drivers.NewStochasticDriver(def.Seed, func(r *rand.Rand) float64 {
			n := distuv.Normal{Mu: mean, Sigma: stddev, Src: r}
			return n.Rand()
		}), nil
	default:
		return nil, fmt.Errorf("climate driver %q: unsupported distribution %q", name, p.StringOr("distribution", "normal"))
	}
}

// wgenParamsFrom reads the flat monthly and constant WGEN parameters out
// of a driver definition's params bag. Every slot of the triplet must
// carry the same params block; only the precipitation slot's is read.
func wgenParamsFrom(def modeldef.DriverDefinition) (kernels.WGENParams, kernels.HargreavesETParams, error) {
	p := modeldef.ComponentParams(def.Params)

	monthly := func(key string, rangeCheck bool) ([12]float64, error) {
		var out [12]float64
		raw, ok := p[key]
		if !ok {
			return out, fmt.Errorf("wgen params missing %q", key)
		}
		list, ok := raw.([]any)
		if !ok || len(list) != 12 {
			return out, fmt.Errorf("wgen params %q must be a 12-element list", key)
		}
		for i, v := range list {
			f, ok := toFloatAny(v)
			if !ok {
				return out, fmt.Errorf("wgen params %q[%d] is not numeric", key, i)
			}
			if rangeCheck && (f < 0 || f > 1) {
				return out, fmt.Errorf("wgen params %q[%d] = %v out of range [0, 1]", key, i, f)
			}
			out[i] = f
		}
		return out, nil
	}

	var params kernels.WGENParams
	var err error
	if params.PWW, err = monthly("pww", true); err != nil {
		return params, kernels.HargreavesETParams{}, err
	}
	if params.PWD, err = monthly("pwd", true); err != nil {
		return params, kernels.HargreavesETParams{}, err
	}
	if params.Alpha, err = monthly("alpha", false); err != nil {
		return params, kernels.HargreavesETParams{}, err
	}
	if params.Beta, err = monthly("beta", false); err != nil {
		return params, kernels.HargreavesETParams{}, err
	}

	params.TXMD = p.FloatOr("txmd", 0)
	params.ATX = p.FloatOr("atx", 0)
	params.TXMW = p.FloatOr("txmw", 0)
	params.TN = p.FloatOr("tn", 0)
	params.ATN = p.FloatOr("atn", 0)
	params.CVTX = p.FloatOr("cvtx", 0.1)
	params.CVTN = p.FloatOr("cvtn", 0.1)
	params.RMD = p.FloatOr("rmd", 0)
	params.RMW = p.FloatOr("rmw", 0)
	params.AR = p.FloatOr("ar", 0)
	params.Latitude = def.Latitude

	etParams := kernels.HargreavesETParams{
		LatitudeDeg: def.Latitude,
		Coefficient: p.FloatOr("et_coefficient", kernels.DefaultHargreavesCoefficient),
	}

	return params, etParams, nil
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
