package providers

import (
	"context"
	"time"

	"github.com/daymark-hq/daymark-go/internal/models"
)

// v1 placeholder measurements, used until a live weather feed is wired in.
// These are the documented stand-in values, kept as named constants behind
// the ObservationProvider interface.
const (
	placeholderHeatIndexF  = 92.0
	placeholderRain24hIn   = 0.2
	placeholderWindSustMPH = 18.0
	placeholderTropical    = false
)

// StaticObservations is the default ObservationProvider. It returns the
// documented placeholder measurements for every county, with the current
// month and the county's configured population density filled in.
type StaticObservations struct {
	now func() time.Time
}

func NewStaticObservations() *StaticObservations {
	return &StaticObservations{now: time.Now}
}

func (s *StaticObservations) Observe(_ context.Context, county models.County) (models.RawObservation, error) {
	return models.RawObservation{
		Month:       int(s.now().Month()),
		HeatIndexF:  placeholderHeatIndexF,
		Rain24hIn:   placeholderRain24hIn,
		WindSustMPH: placeholderWindSustMPH,
		Tropical:    placeholderTropical,
		PopDensity:  county.PopDensity,
	}, nil
}
