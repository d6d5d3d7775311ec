package components

import "github.com/basinsim/basinsim/internal/model"

// DemandMode selects Demand's formula.
type DemandMode int

const (
	DemandMunicipal DemandMode = iota
	DemandAgricultural
)

// Demand models water extraction in one of two modes, grounded on
// components/demand.py's Demand.step.
type Demand struct {
	base

	mode DemandMode

	population         float64
	perCapitaDemandLPD float64
	outdoorAreaHA      float64
	outdoorCoefficient float64

	irrigatedAreaHA  float64
	cropCoefficient  float64
}

// DemandConfig configures a Demand component. Municipal mode requires
// Population and PerCapitaDemandLPD; agricultural mode requires
// IrrigatedAreaHA and CropCoefficient.
type DemandConfig struct {
	Mode DemandMode

	Population         float64
	PerCapitaDemandLPD float64
	OutdoorAreaHA      float64
	OutdoorCoefficient float64 // default 0.8 when zero

	IrrigatedAreaHA float64
	CropCoefficient float64
}

// NewDemand builds a Demand from cfg.
func NewDemand(name string, cfg DemandConfig) *Demand {
	outdoorCoef := cfg.OutdoorCoefficient
	if outdoorCoef == 0 {
		outdoorCoef = 0.8
	}

	d := &Demand{
		base:               newBase(name),
		mode:               cfg.Mode,
		population:         cfg.Population,
		perCapitaDemandLPD: cfg.PerCapitaDemandLPD,
		outdoorAreaHA:      cfg.OutdoorAreaHA,
		outdoorCoefficient: outdoorCoef,
		irrigatedAreaHA:    cfg.IrrigatedAreaHA,
		cropCoefficient:    cfg.CropCoefficient,
	}
	d.outputs["demand"] = 0
	d.outputs["supplied"] = 0
	d.outputs["deficit"] = 0
	return d
}

func (d *Demand) Kind() model.Kind { return model.KindDemand }

func (d *Demand) Step(date model.Date, climate model.ClimateSource) error {
	et0 := climate.ET(date)

	var demand float64
	switch d.mode {
	case DemandMunicipal:
		indoor := d.population * d.perCapitaDemandLPD / 1000.0
		outdoor := d.outdoorAreaHA * d.outdoorCoefficient * et0 * 10.0
		demand = indoor + outdoor
		d.outputs["indoor_demand"] = indoor
		d.outputs["outdoor_demand"] = outdoor
	case DemandAgricultural:
		demand = d.irrigatedAreaHA * d.cropCoefficient * et0 * 10.0
	}
	demand = max0(demand)

	availableSupply := max0(d.input("available_supply"))
	supplied := min(demand, availableSupply)
	deficit := demand - supplied

	d.outputs["demand"] = demand
	d.outputs["supplied"] = supplied
	d.outputs["deficit"] = deficit

	return nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

var _ model.Component = (*Demand)(nil)
