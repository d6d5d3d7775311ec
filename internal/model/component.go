package model

// Kind tags which concrete component variant a node in the network is,
// generalizing the teacher's weatherstations.Capability bitmask into a
// single tag per component (components in this domain are not
// multi-capability).
type Kind int

const (
	KindCatchment Kind = iota
	KindReservoir
	KindDemand
	KindDiversion
	KindJunction
	KindPump
	KindLaggedValue
)

func (k Kind) String() string {
	switch k {
	case KindCatchment:
		return "Catchment"
	case KindReservoir:
		return "Reservoir"
	case KindDemand:
		return "Demand"
	case KindDiversion:
		return "Diversion"
	case KindJunction:
		return "Junction"
	case KindPump:
		return "Pump"
	case KindLaggedValue:
		return "LaggedValue"
	default:
		return "Unknown"
	}
}

// ClimateSource is the read-only view of the climate driver registry that
// a component's Step sees. It is declared here, not in internal/drivers,
// so that this package can name it in the Component interface without
// importing the driver implementations (drivers.Registry implements this
// interface on the other side).
type ClimateSource interface {
	Precipitation(date Date) float64
	Temperature(date Date) float64
	ET(date Date) float64
	Evaporation(date Date) float64
}

// Component is the unit node of the network graph. Every catchment,
// reservoir, demand, diversion, junction, pump, and lagged-value node
// implements it. This generalizes the teacher's weatherstations.WeatherStation
// interface (StartWeatherStation/StopWeatherStation/StationName/Capabilities)
// into the step-based shape this domain needs.
type Component interface {
	Name() string
	Kind() Kind
	Inputs() map[string]float64
	Outputs() map[string]float64
	Step(date Date, climate ClimateSource) error
}

// InputSetter is implemented by every Component alongside Component; the
// scheduler uses it during pre-step data transfer to replace a component's
// entire inputs map (cleared and repopulated from upstream outputs) without
// the component itself exposing a more permissive mutation API.
type InputSetter interface {
	SetInputs(map[string]float64)
}
