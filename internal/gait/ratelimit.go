package gait

import (
	"sync"

	"github.com/markusressel/fin2go/internal/util"
)

// RateLimiter bounds how far the commanded angle of a fin ray may move
// within a single cycle, protecting the servo gears from step changes.
// It remembers the angle commanded in the previous cycle for every
// (side, ray) pair; all rays start at 0 degrees.
type RateLimiter struct {
	maxAngleDelta float64

	mu          sync.Mutex
	last        [2][]float64
	saturations uint64
}

func NewRateLimiter(raysPerSide int, maxAngleDelta float64) *RateLimiter {
	return &RateLimiter{
		maxAngleDelta: maxAngleDelta,
		last: [2][]float64{
			make([]float64, raysPerSide),
			make([]float64, raysPerSide),
		},
	}
}

// Limit bounds the proposed angle relative to the previous cycle and
// remembers the result. side must be SidePort or SideStarboard.
func (r *RateLimiter) Limit(side Side, ray int, proposed float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.last[side][ray]
	bounded := util.Coerce(proposed, prev-r.maxAngleDelta, prev+r.maxAngleDelta)
	if bounded != proposed {
		// expected whenever a command asks for a fast direction
		// change, reported as a metric only
		r.saturations++
	}
	r.last[side][ray] = bounded
	return bounded
}

// Last returns the angle commanded for a fin ray in the most recent cycle.
func (r *RateLimiter) Last(side Side, ray int) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[side][ray]
}

// Saturations counts how often a proposed angle exceeded the per-cycle bound.
func (r *RateLimiter) Saturations() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saturations
}
