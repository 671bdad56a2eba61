package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/daymark-hq/daymark-go/internal/database"
)

// noCoverage marks a cached "provider has no data here" outcome so the
// backend is not re-queried for every request against a dark coordinate.
const noCoverage = "none"

// CachedAirQuality is a read-through Redis cache in front of an air quality
// backend. Cache failures degrade to direct backend calls; they are never
// surfaced to the caller.
type CachedAirQuality struct {
	inner  AirQualityProvider
	redis  *database.RedisClient
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedAirQuality(inner AirQualityProvider, redisClient *database.RedisClient, ttl time.Duration, logger *logrus.Logger) *CachedAirQuality {
	return &CachedAirQuality{
		inner:  inner,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

func aqiCacheKey(lat, lon float64) string {
	return fmt.Sprintf("aqi:%.4f,%.4f", lat, lon)
}

func (c *CachedAirQuality) FetchAQI(ctx context.Context, lat, lon float64) (*float64, error) {
	key := aqiCacheKey(lat, lon)

	cached, err := c.redis.Get(ctx, key)
	switch {
	case err == nil:
		if cached == noCoverage {
			return nil, nil
		}
		if aqi, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return &aqi, nil
		}
		c.logger.WithField("key", key).Warn("Discarding unparseable cached AQI value")
	case err != redis.Nil:
		c.logger.WithError(err).Warn("AQI cache read failed, querying backend directly")
	}

	aqi, err := c.inner.FetchAQI(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	value := noCoverage
	if aqi != nil {
		value = strconv.FormatFloat(*aqi, 'f', -1, 64)
	}
	if err := c.redis.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.WithError(err).Warn("AQI cache write failed")
	}

	return aqi, nil
}
