// Package waves reduces a multi-year buoy record to the scalar wave climate
// used to force the downstream coastline evolution model.
package waves

import (
	"errors"
	"fmt"
	"math"

	"github.com/spencer-p/coastprep/pkg/ndbc"
)

var errNoData = errors.New("no valid observations")

// Forcing is the wave climate summary handed to the coastline model.
type Forcing struct {
	// MeanHeight is the mean significant wave height in meters.
	MeanHeight float64 `json:"mean_height_m"`
	// MeanPeriod is the mean dominant wave period in seconds.
	MeanPeriod float64 `json:"mean_period_s"`
	// ModalDirection is the most common mean wave direction in degrees true.
	ModalDirection int `json:"modal_direction_deg"`
	// Samples counts observations that carried a wave height.
	Samples int `json:"samples"`
}

func (f Forcing) String() string {
	return fmt.Sprintf("Hs %.2f m, Tp %.1f s, from %d degrees (%d samples)",
		f.MeanHeight, f.MeanPeriod, f.ModalDirection, f.Samples)
}

// Summarize computes the forcing climate from a buoy record. Observations
// with missing (sentinel-masked) fields contribute only the fields they
// carry. It is an error if no observation carries a wave height, a period,
// or a direction.
func Summarize(obs ndbc.Observations) (Forcing, error) {
	var f Forcing

	heightSum, heightN := 0.0, 0
	periodSum, periodN := 0.0, 0
	dirCounts := make(map[int]int)

	for _, o := range obs {
		if o.WaveHeight != nil {
			heightSum += *o.WaveHeight
			heightN++
		}
		if o.DominantPeriod != nil {
			periodSum += *o.DominantPeriod
			periodN++
		}
		if o.MeanWaveDir != nil {
			dirCounts[int(math.Round(*o.MeanWaveDir))%360]++
		}
	}

	if heightN == 0 {
		return f, fmt.Errorf("wave height: %w", errNoData)
	}
	if periodN == 0 {
		return f, fmt.Errorf("wave period: %w", errNoData)
	}
	if len(dirCounts) == 0 {
		return f, fmt.Errorf("wave direction: %w", errNoData)
	}

	f.MeanHeight = heightSum / float64(heightN)
	f.MeanPeriod = periodSum / float64(periodN)
	f.ModalDirection = mode(dirCounts)
	f.Samples = heightN
	return f, nil
}

// mode picks the most frequent direction; ties resolve to the smallest
// angle so the result is deterministic.
func mode(counts map[int]int) int {
	best, bestCount := 0, -1
	for dir, count := range counts {
		if count > bestCount || (count == bestCount && dir < best) {
			best, bestCount = dir, count
		}
	}
	return best
}
