// Package dean synthesizes bathymetry from a digitized shoreline using the
// Dean equilibrium beach profile, depth = A * x^m for cross-shore distance x.
package dean

import (
	"fmt"
	"math"
)

// Profile holds the empirical Dean profile coefficients. A carries units of
// m^(1-m); m is dimensionless.
type Profile struct {
	A float64
	M float64
}

// Default is the textbook parameterization for a medium sand beach,
// h = 0.1 * x^(2/3). At 1000 m offshore it gives roughly 10 m of depth.
var Default = Profile{A: 0.1, M: 2.0 / 3.0}

// Depth returns the equilibrium depth in meters at the given cross-shore
// distance in meters. Landward distances (dist <= 0) clamp to zero depth at
// the shoreline. Non-finite distances are rejected.
func (p Profile) Depth(dist float64) (float64, error) {
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 0, fmt.Errorf("cross-shore distance %v is not finite", dist)
	}
	return p.depth(dist), nil
}

// depth is Depth without the validity check, for grid loops that have
// already validated their inputs.
func (p Profile) depth(dist float64) float64 {
	if dist <= 0 {
		return 0
	}
	return p.A * math.Pow(dist, p.M)
}

// Sample evaluates the profile at n evenly spaced distances from the
// shoreline (0) out to maxDist inclusive.
func (p Profile) Sample(maxDist float64, n int) []float64 {
	if n < 2 || maxDist <= 0 {
		return nil
	}
	step := maxDist / float64(n-1)
	result := make([]float64, n)
	for i := range result {
		result[i] = p.depth(step * float64(i))
	}
	return result
}

// ClosureDistance inverts the profile: the cross-shore distance at which the
// profile reaches the given depth. Useful for sizing a grid out to the depth
// of closure.
func (p Profile) ClosureDistance(depth float64) float64 {
	if depth <= 0 || p.A <= 0 || p.M <= 0 {
		return 0
	}
	return math.Pow(depth/p.A, 1/p.M)
}
