package kernels

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// WGENParams are the fixed statistical parameters of the WGEN stochastic
// weather generator: monthly Markov/gamma precipitation parameters plus
// constant Fourier temperature and radiation parameters. Temperature
// parameters are expressed in Celsius at this interface; the kernel does
// its Fourier/noise arithmetic in Kelvin internally, per the reference
// implementation.
type WGENParams struct {
	PWW   [12]float64 // P(wet | prior wet), by month
	PWD   [12]float64 // P(wet | prior dry), by month
	Alpha [12]float64 // gamma shape for wet-day amount, by month
	Beta  [12]float64 // gamma scale (mm) for wet-day amount, by month

	TXMD  float64 // mean dry-day max temp, degC
	ATX   float64 // max-temp seasonal amplitude, degC
	TXMW  float64 // mean wet-day max temp, degC
	TN    float64 // mean min temp, degC
	ATN   float64 // min-temp seasonal amplitude, degC
	CVTX  float64 // max-temp noise std as a fraction of T_K
	CVTN  float64 // min-temp noise std as a fraction of T_K
	RMD   float64 // mean dry-day solar radiation, MJ/m^2/day
	RMW   float64 // mean wet-day solar radiation, MJ/m^2/day
	AR    float64 // radiation seasonal amplitude, MJ/m^2/day

	Latitude float64
}

// WGENState is threaded through successive calls to WGENStep. RNG owns
// the generator's own private random source; it is mutated in place each
// call (the Go analogue of threading numpy's RandomState.get_state/
// set_state pair through a pure function) rather than serialized to a
// byte blob; the state is not persisted across processes.
type WGENState struct {
	IsWet       bool
	RNG         *rand.Rand
	CurrentDate WGENDate
}

// WGENDate is the minimal calendar handle WGEN needs: month for parameter
// lookup, day-of-year for the Fourier terms, and an Add method to advance
// one day. internal/model.Date satisfies this via a thin adapter in
// internal/model (wgendate.go), keeping this package free of a
// dependency on the higher-level model package.
type WGENDate interface {
	Month() int
	DayOfYear() int
	Add(days int) WGENDate
}

// NewWGENState seeds a fresh generator state for the given start date.
func NewWGENState(seed uint64, isWet bool, start WGENDate) WGENState {
	return WGENState{
		IsWet:       isWet,
		RNG:         rand.New(rand.NewSource(seed)),
		CurrentDate: start,
	}
}

// WGENOutputs are one day's generated weather variables.
type WGENOutputs struct {
	PrecipMM  float64
	TMaxC     float64
	TMinC     float64
	SolarMJM2 float64
	IsWet     bool
}

const celsiusToKelvin = 273.15

// WGENStep generates one day of synthetic weather. With an identical RNG
// seed, identical parameters, and identical dates, two independent calls
// to NewWGENState followed by the same sequence of WGENStep calls produce
// bit-identical output sequences.
func WGENStep(p WGENParams, s WGENState) (WGENState, WGENOutputs) {
	month := s.CurrentDate.Month()
	idx := month - 1

	pww, pwd := p.PWW[idx], p.PWD[idx]
	alpha, beta := p.Alpha[idx], p.Beta[idx]

	var isWetToday bool
	if s.IsWet {
		isWetToday = s.RNG.Float64() < pww
	} else {
		isWetToday = s.RNG.Float64() < pwd
	}

	precipMM := 0.0
	if isWetToday {
		// gonum's Gamma is parameterized by rate (Beta = 1/scale); the
		// reference implementation's beta parameter is a scale in mm.
		gamma := distuv.Gamma{Alpha: alpha, Beta: 1.0 / beta, Src: s.RNG}
		precipMM = gamma.Rand()
	}

	dayOfYear := s.CurrentDate.DayOfYear()

	txmdK := p.TXMD + celsiusToKelvin
	txmwK := p.TXMW + celsiusToKelvin
	tnK := p.TN + celsiusToKelvin

	var tmaxK float64
	if isWetToday {
		tmaxK = seasonalFourier(txmwK, p.ATX, dayOfYear, p.Latitude, 200, 20)
	} else {
		tmaxK = seasonalFourier(txmdK, p.ATX, dayOfYear, p.Latitude, 200, 20)
	}
	tminK := seasonalFourier(tnK, p.ATN, dayOfYear, p.Latitude, 200, 20)

	tmaxNoise := distuv.Normal{Mu: 0, Sigma: p.CVTX * tmaxK, Src: s.RNG}
	tminNoise := distuv.Normal{Mu: 0, Sigma: p.CVTN * tminK, Src: s.RNG}
	tmaxK += tmaxNoise.Rand()
	tminK += tminNoise.Rand()

	tmaxC := tmaxK - celsiusToKelvin
	tminC := tminK - celsiusToKelvin

	var solar float64
	if isWetToday {
		solar = seasonalFourier(p.RMW, p.AR, dayOfYear, p.Latitude, 172, 355)
	} else {
		solar = seasonalFourier(p.RMD, p.AR, dayOfYear, p.Latitude, 172, 355)
	}
	solar = math.Max(0.0, solar)

	outputs := WGENOutputs{
		PrecipMM:  precipMM,
		TMaxC:     tmaxC,
		TMinC:     tminC,
		SolarMJM2: solar,
		IsWet:     isWetToday,
	}

	newState := WGENState{
		IsWet:       isWetToday,
		RNG:         s.RNG,
		CurrentDate: s.CurrentDate.Add(1),
	}

	return newState, outputs
}

// seasonalFourier implements mean + amplitude*cos(2*pi*(doy-peak)/365),
// selecting the northern or southern hemisphere peak day by latitude
// sign.
func seasonalFourier(mean, amplitude float64, dayOfYear int, latitude float64, peakNorth, peakSouth int) float64 {
	peak := peakNorth
	if latitude < 0 {
		peak = peakSouth
	}
	angle := 2 * math.Pi * float64(dayOfYear-peak) / 365
	return mean + amplitude*math.Cos(angle)
}
