package scoring

import (
	"fmt"

	"github.com/daymark-hq/daymark-go/internal/models"
)

// Gear item names contributed by the daily-status drivers.
const (
	GearRainShell       = "rain shell"
	GearWaterproofPouch = "waterproof pouch"
	GearFlashlight      = "flashlight"
	GearPowerBank       = "power bank"
	GearMask            = "mask"
)

// AQIWeights is the configurable score contribution per air-quality band.
// Captured deployments disagreed on these deltas, so they are config, not
// constants.
type AQIWeights struct {
	Good      int `mapstructure:"good"`
	Moderate  int `mapstructure:"moderate"`
	Unhealthy int `mapstructure:"unhealthy"`
}

// DefaultAQIWeights returns the canonical weight table (the richer captured
// variant; set all three to zero for drivers-only behavior).
func DefaultAQIWeights() AQIWeights {
	return AQIWeights{Good: 0, Moderate: 10, Unhealthy: 25}
}

// DailyStatus combines an active-alert count and an optional AQI reading into
// the composite daily status for a coordinate. Either input may be nil when
// its feed failed or has no coverage; the aggregator proceeds with the
// remaining drivers rather than failing.
func DailyStatus(alertCount *int, aqi *float64, weights AQIWeights) models.DailyStatus {
	score := 0
	var drivers []string
	var gear []string

	switch {
	case alertCount == nil:
		drivers = append(drivers, "Weather alert data unavailable")
	case *alertCount <= 0:
		drivers = append(drivers, "No active weather alerts")
	case *alertCount == 1:
		score += 20
		drivers = append(drivers, "1 active weather alert")
		gear = append(gear, GearRainShell, GearWaterproofPouch, GearFlashlight)
	default:
		score += 35
		drivers = append(drivers, fmt.Sprintf("%d active weather alerts", *alertCount))
		gear = append(gear, GearRainShell, GearWaterproofPouch, GearFlashlight, GearPowerBank)
	}

	switch {
	case aqi == nil:
		drivers = append(drivers, "Air quality data unavailable")
	case *aqi <= 50:
		score += weights.Good
		drivers = append(drivers, "Good")
	case *aqi <= 100:
		score += weights.Moderate
		drivers = append(drivers, "Moderate")
	default:
		score += weights.Unhealthy
		drivers = append(drivers, "Unhealthy")
		gear = append(gear, GearMask)
	}

	return models.DailyStatus{
		Status:   statusTier(score),
		Score:    score,
		Drivers:  drivers,
		AddItems: dedupe(gear),
	}
}

func statusTier(score int) models.StatusTier {
	switch {
	case score <= 24:
		return models.TierGreen
	case score <= 44:
		return models.TierYellow
	case score <= 64:
		return models.TierOrange
	default:
		return models.TierRed
	}
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
