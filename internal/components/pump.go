package components

import "github.com/basinsim/basinsim/internal/model"

// PumpControlMode selects how Pump converts control error into flow.
type PumpControlMode int

const (
	PumpDeadband PumpControlMode = iota
	PumpProportional
)

// TargetPoint is one day-of-year anchor in a seasonal target schedule.
type TargetPoint struct {
	DayOfYear int
	Value     float64
}

// Pump models feedback-controlled flow against a monitored process
// variable, grounded on components/pump.py's Pump.step.
type Pump struct {
	base

	controlMode       PumpControlMode
	capacity          float64
	processVariableIn string // input key to read the monitored value from

	deadband float64
	kp       float64

	targetConstant *float64
	targetSchedule []TargetPoint // sorted by DayOfYear
}

// PumpConfig configures a Pump. Exactly one of TargetConstant or
// TargetSchedule should be set.
type PumpConfig struct {
	ControlMode       PumpControlMode
	Capacity          float64
	ProcessVariableIn string

	Deadband float64 // deadband mode
	Kp       float64 // proportional mode

	TargetConstant *float64
	TargetSchedule []TargetPoint
}

// NewPump builds a Pump from cfg, sorting the schedule by day-of-year.
func NewPump(name string, cfg PumpConfig) *Pump {
	schedule := make([]TargetPoint, len(cfg.TargetSchedule))
	copy(schedule, cfg.TargetSchedule)
	for i := 1; i < len(schedule); i++ {
		for j := i; j > 0 && schedule[j].DayOfYear < schedule[j-1].DayOfYear; j-- {
			schedule[j], schedule[j-1] = schedule[j-1], schedule[j]
		}
	}

	p := &Pump{
		base:              newBase(name),
		controlMode:       cfg.ControlMode,
		capacity:          cfg.Capacity,
		processVariableIn: cfg.ProcessVariableIn,
		deadband:          cfg.Deadband,
		kp:                cfg.Kp,
		targetConstant:    cfg.TargetConstant,
		targetSchedule:    schedule,
	}
	p.outputs["pumped_flow"] = 0
	p.outputs["error"] = 0
	p.outputs["target_value"] = 0
	return p
}

func (p *Pump) Kind() model.Kind { return model.KindPump }

func (p *Pump) Step(date model.Date, climate model.ClimateSource) error {
	currentValue := p.input(p.processVariableIn)
	targetValue := p.targetValueFor(date)

	errorVal := targetValue - currentValue

	var pumpedFlow float64
	switch p.controlMode {
	case PumpDeadband:
		if errorVal > p.deadband {
			pumpedFlow = p.capacity
		}
	case PumpProportional:
		pumpedFlow = p.kp * errorVal
		pumpedFlow = max0(min(pumpedFlow, p.capacity))
	}

	p.outputs["pumped_flow"] = pumpedFlow
	p.outputs["error"] = errorVal
	p.outputs["target_value"] = targetValue

	return nil
}

// targetValueFor returns the constant target, or interpolates the
// seasonal schedule with wrap-around at both year boundaries: a date
// before the first anchor interpolates between the last anchor (shifted
// back a year) and the first, and a date after the last anchor
// interpolates between the last and the first (shifted forward a year).
func (p *Pump) targetValueFor(date model.Date) float64 {
	if p.targetConstant != nil {
		return *p.targetConstant
	}
	if len(p.targetSchedule) == 0 {
		return 0
	}
	if len(p.targetSchedule) == 1 {
		return p.targetSchedule[0].Value
	}

	doy := float64(date.DayOfYear())
	first, last := p.targetSchedule[0], p.targetSchedule[len(p.targetSchedule)-1]

	switch {
	case doy <= float64(first.DayOfYear):
		return lerp(float64(last.DayOfYear)-366, last.Value, float64(first.DayOfYear), first.Value, doy)
	case doy >= float64(last.DayOfYear):
		return lerp(float64(last.DayOfYear), last.Value, float64(first.DayOfYear)+366, first.Value, doy)
	default:
		for i := 1; i < len(p.targetSchedule); i++ {
			if doy <= float64(p.targetSchedule[i].DayOfYear) {
				a, b := p.targetSchedule[i-1], p.targetSchedule[i]
				return lerp(float64(a.DayOfYear), a.Value, float64(b.DayOfYear), b.Value, doy)
			}
		}
		return last.Value
	}
}

func lerp(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

var _ model.Component = (*Pump)(nil)
