// Package components implements the concrete network nodes: catchments,
// reservoirs, demands, diversions, junctions, pumps, and lagged-value
// feedback nodes. Each wraps one or more internal/kernels calls behind
// the generic model.Component contract, translating the kernel's typed
// I/O into the loose string-keyed inputs/outputs maps the scheduler
// deals in.
package components

import "github.com/basinsim/basinsim/internal/model"

// base holds the bookkeeping every component needs regardless of kind:
// its name, its inputs/outputs maps, and the InputSetter the scheduler
// uses during pre-step transfer. Embedding base gives a concrete type
// Name, Inputs, Outputs, and SetInputs for free; each component supplies
// its own Kind and Step.
type base struct {
	name    string
	inputs  map[string]float64
	outputs map[string]float64
}

func newBase(name string) base {
	return base{
		name:    name,
		inputs:  make(map[string]float64),
		outputs: make(map[string]float64),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Inputs() map[string]float64 { return b.inputs }

func (b *base) Outputs() map[string]float64 { return b.outputs }

// SetInputs replaces the component's inputs wholesale. The scheduler
// calls this during pre-step transfer, having already summed multiple
// edges landing on the same input name (see internal/network).
func (b *base) SetInputs(in map[string]float64) {
	b.inputs = in
}

// input reads a named input, defaulting to 0 when the upstream component
// never produced it (or there's no edge to it at all) — the spec's
// convention for missing-output edges.
func (b *base) input(name string) float64 {
	return b.inputs[name]
}

// inflowSum sums every input key with the given prefix, the pattern
// Reservoir uses to accept inflow from an arbitrary number of upstream
// connections (inflow_<source>, or the bare prefix key itself, e.g.
// "inflow").
func (b *base) inflowSum(prefix string) float64 {
	var total float64
	for k, v := range b.inputs {
		if k == prefix || len(k) > len(prefix)+1 && k[:len(prefix)+1] == prefix+"_" {
			total += v
		}
	}
	return total
}

var _ model.InputSetter = (*base)(nil)
