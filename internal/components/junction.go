package components

import "github.com/basinsim/basinsim/internal/model"

// Junction sums every input into a single outflow. Grounded on
// components/junction.py's Junction.step, which does nothing but
// sum(self.inputs.values()).
type Junction struct {
	base
}

// NewJunction builds a Junction. It takes no parameters.
func NewJunction(name string) *Junction {
	return &Junction{base: newBase(name)}
}

func (j *Junction) Kind() model.Kind { return model.KindJunction }

func (j *Junction) Step(date model.Date, climate model.ClimateSource) error {
	var total float64
	for _, v := range j.inputs {
		total += v
	}
	j.outputs["outflow"] = total
	return nil
}

var _ model.Component = (*Junction)(nil)
