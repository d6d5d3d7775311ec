// Package kernels holds the pure, side-effect-free computational cores of
// the simulation: Snow17 snow accumulation/ablation, AWBM rainfall-runoff,
// WGEN stochastic weather generation, the weir/spillway discharge
// equation, and a Hargreaves-Samani reference ET0 model. None of these
// files import internal/components, internal/network, or internal/engine —
// that's the architectural rule the rest of the system leans on: kernels
// depend only on their own typed records, which is what makes them
// independently unit-testable and safe to vectorize later.
package kernels

import "math"

// Snow17Params are the fixed NWS Snow-17 coefficients for one catchment.
// Defaults follow the reference implementation's defaults.
type Snow17Params struct {
	MFMax     float64 // maximum melt factor, June 21, mm/degC/6hr
	MFMin     float64 // minimum melt factor, Dec 21, mm/degC/6hr
	MBase     float64 // base temperature for melt, degC
	PXTemp1   float64 // below this, precip is 100% snow, degC
	PXTemp2   float64 // above this, precip is 100% rain, degC
	SCF       float64 // gauge undercatch correction factor
	NMF       float64 // maximum negative melt factor, mm/degC/6hr
	PLWHC     float64 // percent liquid water holding capacity, 0-0.4
	UAdj      float64 // wind function for rain-on-snow, mm/mb/6hr
	TIPM      float64 // antecedent temperature index weight, 0.01-1.0
	LapseRate float64 // temperature lapse rate, degC/m
}

// DefaultSnow17Params returns the reference implementation's defaults.
func DefaultSnow17Params() Snow17Params {
	return Snow17Params{
		MFMax: 1.6, MFMin: 0.6, MBase: 0.0,
		PXTemp1: 0.0, PXTemp2: 1.0, SCF: 1.0,
		NMF: 0.15, PLWHC: 0.04, UAdj: 0.05,
		TIPM: 0.15, LapseRate: 0.006,
	}
}

// Snow17State is the per-catchment snowpack state, threaded through
// successive calls to Snow17Step.
type Snow17State struct {
	WI      float64 // ice-phase SWE, mm
	WQ      float64 // liquid water retained in the pack, mm
	AIT     float64 // antecedent temperature index, degC, <= 0
	Deficit float64 // heat deficit, mm SWE-equivalent, in [0, 0.33*WI]
}

// Snow17Inputs are one timestep's forcing data.
type Snow17Inputs struct {
	TempC         float64
	PrecipMM      float64
	ElevationM    float64
	RefElevationM float64
	DayOfYear     int
	DaysInYear    int
	DtHours       float64
	Latitude      float64
}

// Snow17Outputs are one timestep's results.
type Snow17Outputs struct {
	RunoffMM float64 // water leaving the snowpack (melt + rain runoff)
	SWEMM    float64 // WI + WQ
	RainMM   float64
	SnowMM   float64
}

// Snow17Step executes one timestep of the Snow-17 algorithm. Pure
// function: returns a new state and the timestep's outputs, leaving the
// input state untouched.
func Snow17Step(in Snow17Inputs, p Snow17Params, s Snow17State) (Snow17State, Snow17Outputs) {
	wi, wq, ait, deficit := s.WI, s.WQ, s.AIT, s.Deficit

	dt6hr := in.DtHours / 6.0

	// 1. Elevation-adjust temperature.
	altitudeAdj := p.LapseRate * (in.RefElevationM - in.ElevationM)
	tAir := in.TempC + altitudeAdj

	// 2. Partition rain/snow.
	fracSnow := interpolateTemperature(tAir, p.PXTemp1, p.PXTemp2, 1.0, 0.0)
	fracRain := 1.0 - fracSnow

	rain := fracRain * in.PrecipMM
	pn := fracSnow * in.PrecipMM * p.SCF
	wi += pn

	// 3. Antecedent temperature index and new-snow heat deficit.
	tSnowNew := math.Min(tAir, 0.0)
	deltaHDSnow := -(tSnowNew * pn) / 160.0

	tipmDt := 1.0 - math.Pow(1.0-p.TIPM, dt6hr)
	timestepThreshold := 1.5 * dt6hr

	if pn > timestepThreshold {
		ait = tSnowNew
	} else {
		ait = ait + tipmDt*(tAir-ait)
	}
	ait = math.Min(ait, 0.0)

	mf := calculateMeltFactor(in.DayOfYear, in.DaysInYear, in.Latitude, p.MFMax, p.MFMin, dt6hr)

	deltaHDT := p.NMF * dt6hr * (mf / p.MFMax) * (ait - tSnowNew)
	deltaHDT = math.Max(-10.0, math.Min(deltaHDT, 10.0))

	// 4. Melt.
	melt := 0.0
	if tAir > p.MBase {
		isRain := rain > 0.25*in.DtHours && tAir > 0.0
		if isRain {
			melt = calculateRainOnSnowMelt(tAir, rain, in.ElevationM, in.DtHours, dt6hr, p.UAdj)
		} else {
			tRainEnergy := math.Max(math.Max(tAir, p.PXTemp1), 0.0)
			melt = mf*(tAir-p.MBase) + 0.0125*rain*tRainEnergy
		}
		melt = math.Max(melt, 0.0)
	}

	// 5. Apply melt and the liquid-water balance.
	meltApplied := math.Min(wi, melt)
	wi -= meltApplied
	melt = meltApplied

	qw := melt + rain
	wqx := p.PLWHC * wi

	deficit += deltaHDSnow + deltaHDT
	deficit = math.Max(0.0, math.Min(deficit, 0.33*wi))

	// 6. Ripeness and excess water.
	excessMelt := 0.0
	if wi+wq > 0.0 {
		waterDemandToRipen := deficit*(1.0+p.PLWHC) + wqx
		currentLiquidPlusNew := wq + qw

		switch {
		case currentLiquidPlusNew > waterDemandToRipen:
			excessMelt = currentLiquidPlusNew - waterDemandToRipen
			wq = wqx
			wi += deficit
			deficit = 0.0
		case currentLiquidPlusNew >= deficit:
			wq = wq + qw - deficit
			wi += deficit
			deficit = 0.0
		default:
			wi += qw
			deficit -= qw
		}
	} else {
		excessMelt = qw + wq
		wi = 0.0
		wq = 0.0
		deficit = 0.0
	}

	if deficit == 0.0 {
		ait = 0.0
	}

	swe := wi + wq

	newState := Snow17State{WI: wi, WQ: wq, AIT: ait, Deficit: deficit}
	outputs := Snow17Outputs{RunoffMM: excessMelt, SWEMM: swe, RainMM: rain, SnowMM: pn}
	return newState, outputs
}

func interpolateTemperature(temp, t1, t2, v1, v2 float64) float64 {
	switch {
	case temp <= t1:
		return v1
	case temp >= t2:
		return v2
	default:
		fraction := (temp - t1) / (t2 - t1)
		return v1 + fraction*(v2-v1)
	}
}

func calculateMeltFactor(dayOfYear, daysInYear int, lat, mfmax, mfmin, dt6hr float64) float64 {
	n := float64(dayOfYear - 80)
	sv := 0.5*math.Sin((n*2.0*math.Pi)/float64(daysInYear)) + 0.5

	av := 1.0
	if lat >= 54.0 {
		switch {
		case dayOfYear <= 78:
			av = 0.0
		case dayOfYear <= 116:
			av = (float64(dayOfYear) - 78.0) / 38.0
		case dayOfYear <= 228:
			av = 1.0
		case dayOfYear <= 266:
			av = 1.0 - (float64(dayOfYear)-228.0)/38.0
		default:
			av = 0.0
		}
	}

	return dt6hr * ((sv * av * (mfmax - mfmin)) + mfmin)
}

func calculateRainOnSnowMelt(tAir, rain, elev, dtHours, dt6hr, uadj float64) float64 {
	tK := tAir + 273.15

	const sigma = 6.12e-10
	mROS1 := sigma * dtHours * (math.Pow(tK, 4.0) - math.Pow(273.15, 4.0))

	tRain := math.Max(tAir, 0.0)
	mROS2 := 0.0125 * rain * tRain

	pAtm := calculateAtmPressure(elev)
	eSat := calculateSatVaporPressure(tAir)
	term3 := (0.9*eSat - 6.11) + (0.00057 * pAtm * tAir)
	mROS3 := 8.5 * uadj * dt6hr * term3

	return math.Max(mROS1, 0.0) + math.Max(mROS2, 0.0) + math.Max(mROS3, 0.0)
}

// calculateAtmPressure returns atmospheric pressure in mb at elev meters,
// in the same exponential-of-altitude style as util/solar/asce.go's
// barometric pressure term (adapted here from feet/Fahrenheit to SI).
func calculateAtmPressure(elev float64) float64 {
	elev100m := elev / 100.0
	return 33.86 * (29.9 - (0.335 * elev100m) + (0.00022 * math.Pow(elev100m, 2.4)))
}

// calculateSatVaporPressure returns saturation vapor pressure in mb for a
// Celsius temperature, a Tetens-form expression in the style of
// util/solar/asce.go's vapor-pressure term.
func calculateSatVaporPressure(temp float64) float64 {
	return 2.7489e8 * math.Exp(-4278.63/(temp+242.792))
}
