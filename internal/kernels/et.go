package kernels

import "math"

// HargreavesETParams are the fixed parameters of the Hargreaves-Samani
// reference ET0 method: a temperature-only estimator that is the natural
// companion to WGEN's Fourier temperature series when no pan-evaporation
// or radiation-balance driver is available. Supplements spec.md's named
// kernel list with the climate kernel the original source ships alongside
// Snow17/AWBM/WGEN/weir (see DESIGN.md).
type HargreavesETParams struct {
	LatitudeDeg float64
	Coefficient float64 // Hargreaves coefficient, typically 0.0023
}

// DefaultHargreavesCoefficient is the commonly used C_H value.
const DefaultHargreavesCoefficient = 0.0023

// HargreavesETInputs are one day's forcing data.
type HargreavesETInputs struct {
	TMinC     float64
	TMaxC     float64
	DayOfYear int
}

// ETOutputs carries the computed reference evapotranspiration.
type ETOutputs struct {
	ET0MM float64
}

// HargreavesET computes reference evapotranspiration via the
// Hargreaves-Samani method: ET0 = C_H * Ra * (Tmean + 17.8) * sqrt(Trange).
func HargreavesET(in HargreavesETInputs, p HargreavesETParams) ETOutputs {
	tmean := (in.TMinC + in.TMaxC) / 2.0
	trange := math.Max(0.0, in.TMaxC-in.TMinC)

	ra := extraterrestrialRadiation(in.DayOfYear, p.LatitudeDeg)

	et0 := p.Coefficient * ra * (tmean + 17.8) * math.Sqrt(trange)
	et0 = math.Max(0.0, et0)

	return ETOutputs{ET0MM: et0}
}

// extraterrestrialRadiation implements the FAO-56 method for daily
// extraterrestrial radiation (Ra, MJ/m^2/day) from latitude and
// day-of-year.
func extraterrestrialRadiation(dayOfYear int, latitudeDeg float64) float64 {
	latRad := latitudeDeg * math.Pi / 180.0

	const gsc = 0.0820 // MJ/m^2/min, solar constant

	dr := 1 + 0.033*math.Cos(2*math.Pi*float64(dayOfYear)/365)
	delta := 0.409 * math.Sin(2*math.Pi*float64(dayOfYear)/365-1.39)
	ws := math.Acos(-math.Tan(latRad) * math.Tan(delta))

	ra := (24 * 60 / math.Pi) * gsc * dr * (ws*math.Sin(latRad)*math.Sin(delta) +
		math.Cos(latRad)*math.Cos(delta)*math.Sin(ws))

	return math.Max(0.0, ra)
}
