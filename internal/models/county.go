package models

// County carries the static metadata a collection run needs for one county.
type County struct {
	Name string  `json:"name" mapstructure:"name"`
	Lat  float64 `json:"lat" mapstructure:"lat"`
	Lon  float64 `json:"lon" mapstructure:"lon"`
	// PopDensity is people per square mile, used by the ISS density factor.
	PopDensity float64 `json:"pop_density" mapstructure:"pop_density"`
}

// DefaultFloridaCounties is the seed roster used when the collector config
// does not name its own counties.
func DefaultFloridaCounties() []County {
	return []County{
		{Name: "Duval", Lat: 30.3322, Lon: -81.6557, PopDensity: 1100},
		{Name: "Miami-Dade", Lat: 25.7617, Lon: -80.1918, PopDensity: 1470},
		{Name: "Hillsborough", Lat: 27.9506, Lon: -82.4572, PopDensity: 1400},
		{Name: "Orange", Lat: 28.5384, Lon: -81.3789, PopDensity: 1570},
		{Name: "Leon", Lat: 30.4383, Lon: -84.2807, PopDensity: 440},
	}
}
