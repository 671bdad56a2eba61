// Package scoring implements the Daymark risk scoring core: sub-score
// normalizers, composite index calculators, trend signals, the risk-state
// classifier and the daily-status aggregator. Every function here is pure and
// total over its documented input domain; callers validate inputs and handle
// all I/O.
package scoring

// Clamp bounds x to [0, 100].
func Clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}

// HeatScore maps a heat index in Fahrenheit onto the hot-humid band score.
// Bands are inclusive on the upper end. month is accepted for a future
// seasonal adjustment and is currently unused.
func HeatScore(month int, heatIndexF float64) float64 {
	_ = month
	switch {
	case heatIndexF <= 100:
		return 10
	case heatIndexF <= 105:
		return 25
	case heatIndexF <= 110:
		return 45
	case heatIndexF <= 115:
		return 65
	case heatIndexF <= 120:
		return 80
	default:
		return 95
	}
}

func rainScoreBasic(rain24hIn float64) float64 {
	switch {
	case rain24hIn < 1:
		return 10
	case rain24hIn < 2:
		return 30
	case rain24hIn < 4:
		return 55
	case rain24hIn < 6:
		return 75
	default:
		return 90
	}
}

// RainScore maps 24h rainfall in inches onto its band score. An active
// tropical system floors the result at 70 regardless of the base band.
// Rain bands are exclusive on the upper end, unlike the heat bands.
func RainScore(rain24hIn float64, tropical bool) float64 {
	base := rainScoreBasic(rain24hIn)
	if tropical && base < 70 {
		return 70
	}
	return base
}

func windScoreBasic(windSustMPH float64) float64 {
	switch {
	case windSustMPH < 20:
		return 5
	case windSustMPH < 36:
		return 30
	case windSustMPH < 51:
		return 55
	case windSustMPH < 71:
		return 75
	default:
		return 95
	}
}

// WindScore maps sustained wind in mph onto its band score. During a tropical
// system, winds of 35mph or more are floored at 75.
func WindScore(windSustMPH float64, tropical bool) float64 {
	base := windScoreBasic(windSustMPH)
	if tropical && windSustMPH >= 35 && base < 75 {
		return 75
	}
	return base
}

// DensityFactor scales heat load by population density (people per sq mile).
func DensityFactor(popDensity float64) float64 {
	switch {
	case popDensity < 200:
		return 0.8
	case popDensity < 800:
		return 1.0
	default:
		return 1.2
	}
}

// aqiBreakpoint is one EPA PM2.5 breakpoint pair: concentration range
// [CLow, CHigh] maps linearly onto AQI range [ILow, IHigh].
type aqiBreakpoint struct {
	CLow, CHigh float64
	ILow, IHigh float64
}

var pm25Breakpoints = []aqiBreakpoint{
	{0.0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// PM25ToAQI converts a PM2.5 concentration (ug/m3) to the EPA AQI via
// piecewise-linear interpolation. Negative readings clamp to 0; readings
// above the top breakpoint (500.4) saturate at AQI 500.
func PM25ToAQI(pm float64) float64 {
	if pm < 0 {
		pm = 0
	}
	for _, bp := range pm25Breakpoints {
		if pm <= bp.CHigh {
			return (bp.IHigh-bp.ILow)/(bp.CHigh-bp.CLow)*(pm-bp.CLow) + bp.ILow
		}
	}
	return 500
}
