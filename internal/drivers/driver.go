// Package drivers supplies the per-date climate values (precipitation,
// temperature, reference ET, and optionally pan evaporation) that
// components read through internal/model.ClimateSource. A Driver is the
// unit source; a Registry composes up to four of them into the
// type-safe namespace components actually see.
package drivers

import (
	"golang.org/x/exp/rand"

	"github.com/basinsim/basinsim/internal/model"
)

// Driver is a per-date scalar source, grounded on core/drivers.py's
// Driver abstract base: a stochastic generator or a time-series lookup,
// both collapsing to "give me the value for this date."
type Driver interface {
	Value(date model.Date) (float64, error)
}

// StochasticDriver draws a value from a parametric distribution on every
// call via a private RNG mutated in place. It ignores the date argument
// by design: reproducibility here comes from call order against a fixed
// seed, not from date-keyed lookup, mirroring core/drivers.py's
// StochasticDriver built on np.random.default_rng(seed).
type StochasticDriver struct {
	rng  *rand.Rand
	draw func(r *rand.Rand) float64
}

// NewStochasticDriver builds a StochasticDriver from a seed and a
// sampling function. Use distuv distributions (as internal/kernels/wgen.go
// does) for draw when a named distribution is wanted.
func NewStochasticDriver(seed uint64, draw func(r *rand.Rand) float64) *StochasticDriver {
	return &StochasticDriver{
		rng:  rand.New(rand.NewSource(seed)),
		draw: draw,
	}
}

func (d *StochasticDriver) Value(_ model.Date) (float64, error) {
	return d.draw(d.rng), nil
}
