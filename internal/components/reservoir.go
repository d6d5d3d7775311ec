package components

import (
	"fmt"

	"github.com/basinsim/basinsim/internal/kernels"
	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/simerrors"
	"github.com/basinsim/basinsim/pkg/eav"
)

// Reservoir models water storage with mass balance and an optional
// spillway, in either simple mode (constant surface area) or
// elevation-area-volume mode (an eav.Table supplies elevation and area
// as a function of storage). Grounded on components/reservoir.py's
// Reservoir.step.
type Reservoir struct {
	base

	maxStorage   float64
	surfaceArea  float64 // simple mode; 0 means "unknown"
	hasArea      bool
	eavTable     *eav.Table
	spillway     *kernels.WeirParams

	storage         float64
	currentElevation float64
	currentArea      float64
}

// ReservoirConfig configures a Reservoir. Exactly one of SurfaceArea (>0)
// or EAVTable (non-nil) should be set to get evaporation and, in the EAV
// case, spillway support.
type ReservoirConfig struct {
	InitialStorage float64
	MaxStorage     float64

	SurfaceArea float64 // simple mode
	EAVTable    *eav.Table

	SpillwayElevationM   float64
	HasSpillway          bool
	SpillwayWidthM       float64
	SpillwayCoefficient  float64
}

// NewReservoir validates cfg and builds a Reservoir, mirroring
// ReservoirConfig's pydantic validators: initial storage can't exceed
// max storage, and a spillway elevation requires an EAV table.
func NewReservoir(name string, cfg ReservoirConfig) (*Reservoir, error) {
	if cfg.InitialStorage > cfg.MaxStorage {
		return nil, &simerrors.ConfigurationError{
			Component: name, Field: "initial_storage",
			Reason: fmt.Sprintf("%v cannot exceed max_storage (%v)", cfg.InitialStorage, cfg.MaxStorage),
		}
	}
	if cfg.HasSpillway && cfg.EAVTable == nil {
		return nil, &simerrors.ConfigurationError{
			Component: name, Field: "spillway_elevation",
			Reason: "requires an eav_table for elevation tracking",
		}
	}

	r := &Reservoir{
		base:        newBase(name),
		maxStorage:  cfg.MaxStorage,
		surfaceArea: cfg.SurfaceArea,
		hasArea:     cfg.SurfaceArea > 0 || cfg.EAVTable != nil,
		eavTable:    cfg.EAVTable,
		storage:     cfg.InitialStorage,
	}

	if cfg.HasSpillway {
		r.spillway = &kernels.WeirParams{
			Coefficient:     cfg.SpillwayCoefficient,
			WidthM:          cfg.SpillwayWidthM,
			CrestElevationM: cfg.SpillwayElevationM,
		}
	}

	if r.eavTable != nil {
		r.currentElevation = r.eavTable.Elevation(r.storage)
		r.currentArea = r.eavTable.Area(r.storage)
	} else {
		r.currentArea = r.surfaceArea
	}

	r.outputs["storage"] = r.storage
	r.outputs["outflow"] = 0
	r.outputs["spill"] = 0
	if r.eavTable != nil {
		r.outputs["elevation"] = r.currentElevation
		r.outputs["area"] = r.currentArea
	}
	if r.hasArea {
		r.outputs["evaporation_loss"] = 0
	}

	return r, nil
}

func (r *Reservoir) Kind() model.Kind { return model.KindReservoir }

func (r *Reservoir) Step(date model.Date, climate model.ClimateSource) error {
	inflow := max0(r.inflowSum("inflow"))
	release := max0(r.input("release"))

	var evapLoss float64
	if r.hasArea {
		evapRateMM := climate.Evaporation(date)
		evapLoss = max0(evapRateMM * r.currentArea / 1000.0)
	}

	newStorage := r.storage + inflow - release - evapLoss

	if newStorage < 0 {
		// Not enough water to meet release + evaporation; reduce release
		// to what's available, and if that's still not enough, reduce
		// evaporation too so storage_prev + inflow - release - spill -
		// evapLoss always equals the reported Δstorage.
		available := r.storage + inflow
		if available < evapLoss {
			evapLoss = available
		}
		release = max0(available - evapLoss)
		newStorage = 0
	}

	var spill float64

	if r.spillway != nil && r.eavTable != nil {
		tempElevation := r.eavTable.Elevation(newStorage)
		weirOut := kernels.SpillwayDischarge(kernels.WeirInputs{WaterElevationM: tempElevation}, *r.spillway)
		spill = weirOut.DischargeM3D
		newStorage -= spill
		if newStorage < 0 {
			spill += newStorage
			newStorage = 0
		}
	} else if newStorage > r.maxStorage {
		spill = newStorage - r.maxStorage
		newStorage = r.maxStorage
	}

	r.storage = newStorage

	if r.eavTable != nil {
		r.currentElevation = r.eavTable.Elevation(r.storage)
		r.currentArea = r.eavTable.Area(r.storage)
	}

	outflow := release + spill

	r.outputs["storage"] = r.storage
	r.outputs["outflow"] = outflow
	r.outputs["spill"] = spill
	if r.eavTable != nil {
		r.outputs["elevation"] = r.currentElevation
		r.outputs["area"] = r.currentArea
	}
	if r.hasArea {
		r.outputs["evaporation_loss"] = evapLoss
	}

	return nil
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var _ model.Component = (*Reservoir)(nil)
