package scoring

import "errors"

// ErrInsufficientHistory is returned by the history helpers when the CAI
// series is shorter than the minimum the calculation needs. Callers decide
// the degradation policy; the helpers never compute from a short window.
var ErrInsufficientHistory = errors.New("scoring: insufficient CAI history")

// History minimums: a 3-day delta needs today plus three prior days, a range
// needs at least two points.
const (
	minHistoryForDelta = 4
	minHistoryForRange = 2
)

// AV component weights.
const (
	avSTSWeight = 0.50
	avVEXWeight = 0.30
	avFPCWeight = 0.20
)

// Neutral lowest-band trend scores, used by callers degrading on short history.
const (
	NeutralSTS = 10
	NeutralVEX = 10
)

// Delta3d returns cai_today - cai_3_days_ago over a most-recent-last history.
func Delta3d(history []float64) (float64, error) {
	if len(history) < minHistoryForDelta {
		return 0, ErrInsufficientHistory
	}
	return history[len(history)-1] - history[len(history)-4], nil
}

// Range5d returns max-min over the trailing window (most-recent-last,
// including today).
func Range5d(history []float64) (float64, error) {
	if len(history) < minHistoryForRange {
		return 0, ErrInsufficientHistory
	}
	lo, hi := history[0], history[0]
	for _, v := range history[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo, nil
}

// STSFromDeltaCAI maps the 3-day CAI delta onto the Short-Term Trend score.
func STSFromDeltaCAI(delta3d float64) float64 {
	switch {
	case delta3d <= 2:
		return 10
	case delta3d <= 6:
		return 30
	case delta3d <= 10:
		return 55
	case delta3d <= 15:
		return 75
	case delta3d <= 22:
		return 90
	default:
		return 100
	}
}

// VEXFromRange maps the 5-day CAI range onto the Volatility Exposure score.
func VEXFromRange(range5d float64) float64 {
	switch {
	case range5d <= 6:
		return 10
	case range5d <= 12:
		return 35
	case range5d <= 18:
		return 60
	case range5d <= 26:
		return 80
	default:
		return 95
	}
}

// FPCFromForecast derives the Forward Pressure Component from the 3-day
// forecast WPS average, the 3-day max wind score and the tropical flag.
// The branches form a priority cascade; the first true condition wins.
func FPCFromForecast(forecastWPS3dAvg, windScoreMax3d float64, tropical bool) float64 {
	if tropical {
		return 95
	}
	if forecastWPS3dAvg >= 65 || windScoreMax3d >= 75 {
		return 80
	}
	if forecastWPS3dAvg >= 55 && forecastWPS3dAvg <= 64 {
		return 60
	}
	if forecastWPS3dAvg >= 45 && forecastWPS3dAvg <= 54 {
		return 35
	}
	return 15
}

// ApplyWindEscalation is the Rapid Wind Escalation Adjustment: a second pass
// over an already-computed STS. A fast-rising wind score (>=25 points over
// 48h, today at 55 or above) with tropical or elevated forecast pressure
// boosts STS by 10, capped at 100. It must run after STSFromDeltaCAI because
// it adjusts the computed STS, not the raw delta.
func ApplyWindEscalation(sts, windTodayScore, wind48hAgoScore, forecastWPS3dAvg float64, tropical bool) float64 {
	if windTodayScore-wind48hAgoScore >= 25 && windTodayScore >= 55 && (tropical || forecastWPS3dAvg >= 55) {
		boosted := sts + 10
		if boosted > 100 {
			return 100
		}
		return boosted
	}
	return sts
}

// AV blends STS, VEX and FPC into the Acceleration/Volatility composite.
func AV(sts, vex, fpc float64) float64 {
	return Clamp(avSTSWeight*sts + avVEXWeight*vex + avFPCWeight*fpc)
}
