package components

import "github.com/basinsim/basinsim/internal/model"

// LaggedValue breaks a feedback cycle: it emits the value it read from
// its configured source during the previous step (or its seed value at
// t=0), then samples the source's current output for next step.
// Grounded on components/logic.py's LaggedValue.step.
//
// The network builder marks every edge whose target is a LaggedValue as
// a feedback edge, excluding it from the topological sort, so a
// LaggedValue may execute before its source steps on a given date. Its
// pre-step input transfer then reads the source's outputs map as it
// stood at the end of the previous date, which is exactly the value
// this node is meant to re-emit a step late.
type LaggedValue struct {
	base

	previousValue float64
}

// laggedValueSourceInput is the fixed input key the network wires the
// feedback connection's source output onto.
const laggedValueSourceInput = "source"

// NewLaggedValue builds a LaggedValue seeded with initialValue, the
// value it will emit on the first step.
func NewLaggedValue(name string, initialValue float64) *LaggedValue {
	lv := &LaggedValue{
		base:          newBase(name),
		previousValue: initialValue,
	}
	lv.outputs["value"] = initialValue
	return lv
}

func (lv *LaggedValue) Kind() model.Kind { return model.KindLaggedValue }

// Step emits the value sampled last step, then samples the source's
// current input (populated by pre-step transfer from the source's
// outputs map) for next step.
func (lv *LaggedValue) Step(date model.Date, climate model.ClimateSource) error {
	lv.outputs["value"] = lv.previousValue
	lv.previousValue = lv.input(laggedValueSourceInput)
	return nil
}

var _ model.Component = (*LaggedValue)(nil)
