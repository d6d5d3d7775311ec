package kernels

import "math"

// WeirParams describe a rectangular sharp-crested weir (or, via
// SpillwayDischarge, a broad-crested spillway using the same equation).
type WeirParams struct {
	Coefficient     float64 // discharge coefficient, typically 1.5-2.0
	WidthM          float64 // weir width, m
	CrestElevationM float64
}

// WeirInputs carries the current water surface elevation.
type WeirInputs struct {
	WaterElevationM float64
}

// WeirOutputs carries the computed discharge and head.
type WeirOutputs struct {
	DischargeM3S float64
	DischargeM3D float64
	HeadM        float64
}

// WeirDischarge computes discharge over a rectangular sharp-crested weir:
// Q = C * L * H^1.5, zero when head <= 0.
func WeirDischarge(in WeirInputs, p WeirParams) WeirOutputs {
	head := math.Max(0.0, in.WaterElevationM-p.CrestElevationM)

	if head <= 0 {
		return WeirOutputs{HeadM: head}
	}

	q := p.Coefficient * p.WidthM * math.Pow(head, 1.5)
	return WeirOutputs{
		DischargeM3S: q,
		DischargeM3D: q * 86400.0,
		HeadM:        head,
	}
}

// SpillwayDischarge is an alias for WeirDischarge, kept for semantic
// clarity at spillway call sites (spillways are typically modeled as
// broad-crested weirs using the identical equation).
func SpillwayDischarge(in WeirInputs, p WeirParams) WeirOutputs {
	return WeirDischarge(in, p)
}
