package gait

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_InitialAngleIsZero(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)

	// WHEN
	result := limiter.Last(SidePort, 2)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestRateLimiter_WithinBoundPassesThrough(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)

	// WHEN
	result := limiter.Limit(SidePort, 0, 3.0)

	// THEN
	assert.Equal(t, 3.0, result)
	assert.Equal(t, uint64(0), limiter.Saturations())
}

func TestRateLimiter_BoundsFastDirectionChange(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)
	// walk the ray up to 10 degrees
	limiter.Limit(SidePort, 0, 5.0)
	limiter.Limit(SidePort, 0, 10.0)

	// WHEN
	result := limiter.Limit(SidePort, 0, 50.0)

	// THEN
	assert.Equal(t, 15.0, result)
	assert.Equal(t, 15.0, limiter.Last(SidePort, 0))
}

func TestRateLimiter_BoundsNegativeDirection(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)

	// WHEN
	result := limiter.Limit(SideStarboard, 1, -40.0)

	// THEN
	assert.Equal(t, -5.0, result)
}

func TestRateLimiter_CountsSaturations(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)

	// WHEN
	limiter.Limit(SidePort, 0, 2.0)
	limiter.Limit(SidePort, 0, 30.0)
	limiter.Limit(SidePort, 0, -30.0)

	// THEN
	assert.Equal(t, uint64(2), limiter.Saturations())
}

func TestRateLimiter_SidesAreIndependent(t *testing.T) {
	// GIVEN
	limiter := NewRateLimiter(5, 5.0)

	// WHEN
	limiter.Limit(SidePort, 3, 4.0)

	// THEN
	assert.Equal(t, 4.0, limiter.Last(SidePort, 3))
	assert.Equal(t, 0.0, limiter.Last(SideStarboard, 3))
}

func TestRateLimiter_DeltaNeverExceedsBoundOverSequence(t *testing.T) {
	// GIVEN
	maxAngleDelta := 5.0
	limiter := NewRateLimiter(5, maxAngleDelta)
	proposals := []float64{40, -40, 3, 90, -90, 0, 12.5, -0.1, 200, -200}

	prev := 0.0
	for _, proposed := range proposals {
		// WHEN
		result := limiter.Limit(SidePort, 0, proposed)

		// THEN
		assert.LessOrEqual(t, math.Abs(result-prev), maxAngleDelta)
		prev = result
	}
}
