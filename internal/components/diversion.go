package components

import "github.com/basinsim/basinsim/internal/model"

// OutflowSpec names one priority-ordered diversion destination.
type OutflowSpec struct {
	Name     string
	Priority int // lower number = higher priority
	DemandM3 float64
}

// Diversion allocates river flow to an instream requirement first, then
// to named outflows in ascending priority order up to each one's
// demand, tracking per-outflow deficits. Grounded on
// components/diversion.py's RiverDiversion.step.
type Diversion struct {
	base

	maxDiversion    float64
	instreamFlow    float64
	outflows        []OutflowSpec // pre-sorted by ascending priority
}

// DiversionConfig configures a Diversion.
type DiversionConfig struct {
	MaxDiversion float64
	InstreamFlow float64
	Outflows     []OutflowSpec
}

// NewDiversion builds a Diversion, sorting outflows by ascending
// priority once at construction.
func NewDiversion(name string, cfg DiversionConfig) *Diversion {
	outflows := make([]OutflowSpec, len(cfg.Outflows))
	copy(outflows, cfg.Outflows)
	sortOutflowsByPriority(outflows)

	d := &Diversion{
		base:         newBase(name),
		maxDiversion: cfg.MaxDiversion,
		instreamFlow: cfg.InstreamFlow,
		outflows:     outflows,
	}

	d.outputs["diverted_flow"] = 0
	d.outputs["remaining_flow"] = 0
	d.outputs["instream_flow"] = 0
	for _, o := range outflows {
		d.outputs[o.Name] = 0
		d.outputs[o.Name+"_deficit"] = 0
	}

	return d
}

func sortOutflowsByPriority(outflows []OutflowSpec) {
	for i := 1; i < len(outflows); i++ {
		for j := i; j > 0 && outflows[j].Priority < outflows[j-1].Priority; j-- {
			outflows[j], outflows[j-1] = outflows[j-1], outflows[j]
		}
	}
}

func (d *Diversion) Kind() model.Kind { return model.KindDiversion }

func (d *Diversion) Step(date model.Date, climate model.ClimateSource) error {
	riverFlow := max0(d.input("river_flow"))
	available := riverFlow

	instreamAllocated := min(available, d.instreamFlow)
	available -= instreamAllocated

	availableForOutflows := min(available, d.maxDiversion)

	var totalDiverted float64
	if len(d.outflows) > 0 {
		for _, o := range d.outflows {
			allocated := min(availableForOutflows, o.DemandM3)
			deficit := o.DemandM3 - allocated

			d.outputs[o.Name] = allocated
			d.outputs[o.Name+"_deficit"] = deficit

			totalDiverted += allocated
			availableForOutflows -= allocated
		}
	} else {
		totalDiverted = availableForOutflows
	}

	remaining := riverFlow - instreamAllocated - totalDiverted

	d.outputs["diverted_flow"] = totalDiverted
	d.outputs["remaining_flow"] = remaining
	d.outputs["instream_flow"] = instreamAllocated

	return nil
}

var _ model.Component = (*Diversion)(nil)
