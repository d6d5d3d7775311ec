package drivers

import "github.com/basinsim/basinsim/internal/model"

// Registry is the type-safe namespace for the climate drivers a
// component's Step sees: precipitation, temperature, and reference ET
// are required; evaporation (pan evaporation feeding reservoir surface
// loss) is optional and reads zero when unset. It implements
// model.ClimateSource.
//
// The engine calls Refresh once per date, before any component steps;
// every Component.Step call that date reads the values cached by that
// single Refresh, so the registry is effectively read-only for the
// duration of a timestep, per the no-concurrency, single-writer design
// the rest of the engine relies on.
type Registry struct {
	precipitation Driver
	temperature   Driver
	et            Driver
	evaporation   Driver

	current  model.Date
	precipV  float64
	tempV    float64
	etV      float64
	evapV    float64
}

// NewRegistry constructs a Registry from the three required drivers.
// Evaporation is left unset; call WithEvaporation to add it.
func NewRegistry(precipitation, temperature, et Driver) *Registry {
	return &Registry{precipitation: precipitation, temperature: temperature, et: et}
}

// WithEvaporation attaches an optional pan-evaporation driver and
// returns the receiver for chaining.
func (r *Registry) WithEvaporation(evaporation Driver) *Registry {
	r.evaporation = evaporation
	return r
}

// Refresh pulls one value from each configured driver for date and
// caches them. It is the only place a driver's Value method is called;
// everything else reads the cache.
func (r *Registry) Refresh(date model.Date) error {
	p, err := r.precipitation.Value(date)
	if err != nil {
		return err
	}
	t, err := r.temperature.Value(date)
	if err != nil {
		return err
	}
	e, err := r.et.Value(date)
	if err != nil {
		return err
	}

	var ev float64
	if r.evaporation != nil {
		ev, err = r.evaporation.Value(date)
		if err != nil {
			return err
		}
	}

	r.current = date
	r.precipV, r.tempV, r.etV, r.evapV = p, t, e, ev
	return nil
}

// Precipitation returns the cached precipitation for the most recent
// Refresh. date is accepted to satisfy model.ClimateSource but isn't
// compared against the cached date: components only ever see the
// registry during the timestep Refresh populated it for.
func (r *Registry) Precipitation(date model.Date) float64 { return r.precipV }

func (r *Registry) Temperature(date model.Date) float64 { return r.tempV }

func (r *Registry) ET(date model.Date) float64 { return r.etV }

func (r *Registry) Evaporation(date model.Date) float64 { return r.evapV }

var _ model.ClimateSource = (*Registry)(nil)
