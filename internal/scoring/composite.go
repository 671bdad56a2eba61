package scoring

// Composite index weights. Tunable constants; each triple sums to 1.0.
const (
	wpsHeatWeight = 0.50
	wpsRainWeight = 0.30
	wpsWindWeight = 0.20

	issLoadWeight        = 0.70
	issPersistenceWeight = 0.30

	caiWPSWeight = 0.40
	caiISSWeight = 0.45
	caiDASWeight = 0.15
)

// WPS blends the heat/rain/wind sub-scores into the Weather Pressure Score.
func WPS(heat, rain, wind float64) float64 {
	return Clamp(wpsHeatWeight*heat + wpsRainWeight*rain + wpsWindWeight*wind)
}

// ISS blends a density-scaled heat load with a trailing-heat persistence
// proxy into the Impact/Severity Score. persistence is an externally supplied
// 0-100 value; deployments without a live heat-load feed pass their
// configured default.
func ISS(heatScore, popDensity, persistence float64) float64 {
	loadProxy := heatScore * DensityFactor(popDensity)
	return Clamp(issLoadWeight*loadProxy + issPersistenceWeight*persistence)
}

// CAI blends WPS, ISS and the Disruption Adjustment Score into the headline
// Composite Activity Index. das is an external 0-100 operational input.
func CAI(wps, iss, das float64) float64 {
	return Clamp(caiWPSWeight*wps + caiISSWeight*iss + caiDASWeight*das)
}
