package network

import "github.com/basinsim/basinsim/internal/model"

// TransferInputs clears component's inputs map and repopulates it from
// every edge targeting it, reading the current value of each source's
// named output (defaulting to zero when the source never produced it).
// Called immediately before component's own Step, so strong edges
// always see their source's current-timestep output (the source has
// already stepped, by construction of the topological order) while
// feedback edges see whatever the lagged component's source held when
// it last ran — which, since feedback edges are excluded from the
// ordering constraint, may still be the previous date's value.
func (g *Graph) TransferInputs(component string) {
	comp, ok := g.Components[component]
	if !ok {
		return
	}
	setter, ok := comp.(model.InputSetter)
	if !ok {
		return
	}

	inputs := make(map[string]float64)
	for _, e := range g.EdgesInto(component) {
		src, ok := g.Components[e.FromComponent]
		if !ok {
			continue
		}
		inputs[e.ToInput] += src.Outputs()[e.FromOutput]
	}

	setter.SetInputs(inputs)
}
