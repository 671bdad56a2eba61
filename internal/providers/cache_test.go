package providers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daymark-hq/daymark-go/internal/database"
)

// countingAirQuality records how many times the backend was hit.
type countingAirQuality struct {
	calls int
	aqi   *float64
	err   error
}

func (c *countingAirQuality) FetchAQI(_ context.Context, _, _ float64) (*float64, error) {
	c.calls++
	return c.aqi, c.err
}

func testRedis(t *testing.T) *database.RedisClient {
	t.Helper()
	mr := miniredis.RunT(t)
	return &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
}

func TestCachedAirQuality_ReadThrough(t *testing.T) {
	value := 62.0
	backend := &countingAirQuality{aqi: &value}
	cache := NewCachedAirQuality(backend, testRedis(t), time.Minute, testLogger())

	ctx := context.Background()

	first, err := cache.FetchAQI(ctx, 30.33, -81.65)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 62.0, *first)
	assert.Equal(t, 1, backend.calls)

	// Second call is served from cache.
	second, err := cache.FetchAQI(ctx, 30.33, -81.65)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 62.0, *second)
	assert.Equal(t, 1, backend.calls)
}

func TestCachedAirQuality_CachesNoCoverage(t *testing.T) {
	backend := &countingAirQuality{aqi: nil}
	cache := NewCachedAirQuality(backend, testRedis(t), time.Minute, testLogger())

	ctx := context.Background()

	aqi, err := cache.FetchAQI(ctx, 27.0, -81.0)
	require.NoError(t, err)
	assert.Nil(t, aqi)

	aqi, err = cache.FetchAQI(ctx, 27.0, -81.0)
	require.NoError(t, err)
	assert.Nil(t, aqi)
	assert.Equal(t, 1, backend.calls, "no-coverage outcome is cached too")
}

func TestCachedAirQuality_DistinctCoordinates(t *testing.T) {
	value := 40.0
	backend := &countingAirQuality{aqi: &value}
	cache := NewCachedAirQuality(backend, testRedis(t), time.Minute, testLogger())

	ctx := context.Background()

	_, err := cache.FetchAQI(ctx, 30.33, -81.65)
	require.NoError(t, err)
	_, err = cache.FetchAQI(ctx, 25.76, -80.19)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.calls)
}
