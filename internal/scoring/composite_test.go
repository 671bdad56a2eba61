package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWPS(t *testing.T) {
	// Placeholder deployment inputs: heat=10, rain=10, wind=5.
	assert.InDelta(t, 9.0, WPS(10, 10, 5), 0.0001)
	assert.InDelta(t, 100.0, WPS(100, 100, 100), 0.0001)
}

func TestWPS_ClampsExtremes(t *testing.T) {
	assert.Equal(t, 0.0, WPS(-50, -50, -50))
	assert.Equal(t, 100.0, WPS(500, 500, 500))
}

func TestISS(t *testing.T) {
	// heat=10 in a dense county (factor 1.2) with the default persistence 40:
	// clamp(0.7*12 + 0.3*40) = 20.4
	assert.InDelta(t, 20.4, ISS(10, 1200, 40), 0.0001)
	// Sparse county scales heat load down.
	assert.InDelta(t, 0.7*10*0.8+0.3*40, ISS(10, 100, 40), 0.0001)
}

func TestCAI(t *testing.T) {
	// clamp(0.4*9 + 0.45*20.4 + 0.15*10) = 14.28
	assert.InDelta(t, 14.28, CAI(9, 20.4, 10), 0.0001)
}

func TestCAI_ClampsWeightedSum(t *testing.T) {
	assert.Equal(t, 100.0, CAI(200, 200, 200))
	assert.Equal(t, 0.0, CAI(-10, -10, -10))
}
