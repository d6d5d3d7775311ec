package drivers

import (
	"github.com/basinsim/basinsim/internal/kernels"
	"github.com/basinsim/basinsim/internal/model"
)

// wgenGenerator advances a single shared kernels.WGENState once per
// calendar day and derives reference ET from the generated temperature
// series via the Hargreaves-Samani kernel, so precipitation, temperature,
// and ET stay mutually consistent for a given day instead of being drawn
// from three independent RNGs. Three Driver adapters below share one
// generator and each read back the slice they care about.
type wgenGenerator struct {
	params   kernels.WGENParams
	etParams kernels.HargreavesETParams
	state    kernels.WGENState

	advanced    bool
	currentDate model.Date
	out         kernels.WGENOutputs
	et0MM       float64
}

func newWGENGenerator(seed uint64, startWet bool, start model.Date, params kernels.WGENParams, etParams kernels.HargreavesETParams) *wgenGenerator {
	return &wgenGenerator{
		params:   params,
		etParams: etParams,
		state:    kernels.NewWGENState(seed, startWet, start.AsWGENDate()),
	}
}

// advance runs the generator forward if date hasn't already been
// produced, so that the precipitation/temperature/ET drivers calling
// into the same generator on the same Refresh only consume one day of
// the RNG sequence between them.
func (g *wgenGenerator) advance(date model.Date) {
	if g.advanced && g.currentDate.Equal(date) {
		return
	}

	newState, out := kernels.WGENStep(g.params, g.state)
	g.state = newState
	g.out = out
	g.et0MM = kernels.HargreavesET(kernels.HargreavesETInputs{
		TMinC:     out.TMinC,
		TMaxC:     out.TMaxC,
		DayOfYear: date.DayOfYear(),
	}, g.etParams).ET0MM

	g.currentDate = date
	g.advanced = true
}

type wgenPrecipDriver struct{ g *wgenGenerator }

func (d wgenPrecipDriver) Value(date model.Date) (float64, error) {
	d.g.advance(date)
	return d.g.out.PrecipMM, nil
}

type wgenTempDriver struct{ g *wgenGenerator }

func (d wgenTempDriver) Value(date model.Date) (float64, error) {
	d.g.advance(date)
	return (d.g.out.TMaxC + d.g.out.TMinC) / 2.0, nil
}

type wgenETDriver struct{ g *wgenGenerator }

func (d wgenETDriver) Value(date model.Date) (float64, error) {
	d.g.advance(date)
	return d.g.et0MM, nil
}

// NewWGENClimateDrivers builds the three correlated precipitation,
// temperature, and reference-ET drivers backed by a single WGEN
// generator, for wiring directly into NewRegistry.
func NewWGENClimateDrivers(seed uint64, startWet bool, start model.Date, params kernels.WGENParams, etParams kernels.HargreavesETParams) (precipitation, temperature, et Driver) {
	g := newWGENGenerator(seed, startWet, start, params, etParams)
	return wgenPrecipDriver{g: g}, wgenTempDriver{g: g}, wgenETDriver{g: g}
}
