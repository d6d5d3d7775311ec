package drivers

import (
	"testing"

	"github.com/basinsim/basinsim/internal/model"
)

type constDriver float64

func (d constDriver) Value(model.Date) (float64, error) { return float64(d), nil }

func TestRegistryRefreshAndRead(t *testing.T) {
	reg := NewRegistry(constDriver(3.5), constDriver(18.0), constDriver(4.2)).
		WithEvaporation(constDriver(6.0))

	date, _ := model.ParseDate("2021-06-15")
	if err := reg.Refresh(date); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := reg.Precipitation(date); got != 3.5 {
		t.Errorf("Precipitation = %v, want 3.5", got)
	}
	if got := reg.Temperature(date); got != 18.0 {
		t.Errorf("Temperature = %v, want 18.0", got)
	}
	if got := reg.ET(date); got != 4.2 {
		t.Errorf("ET = %v, want 4.2", got)
	}
	if got := reg.Evaporation(date); got != 6.0 {
		t.Errorf("Evaporation = %v, want 6.0", got)
	}
}

func TestRegistryWithoutEvaporationDefaultsZero(t *testing.T) {
	reg := NewRegistry(constDriver(1), constDriver(2), constDriver(3))
	date, _ := model.ParseDate("2021-06-15")
	if err := reg.Refresh(date); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := reg.Evaporation(date); got != 0 {
		t.Errorf("Evaporation = %v, want 0 when unset", got)
	}
}

type errDriver struct{}

func (errDriver) Value(model.Date) (float64, error) {
	return 0, &dummyErr{}
}

type dummyErr struct{}

func (*dummyErr) Error() string { return "boom" }

func TestRegistryRefreshPropagatesDriverError(t *testing.T) {
	reg := NewRegistry(errDriver{}, constDriver(1), constDriver(1))
	date, _ := model.ParseDate("2021-01-01")
	if err := reg.Refresh(date); err == nil {
		t.Fatal("expected Refresh to propagate the driver error")
	}
}
