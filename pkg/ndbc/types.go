package ndbc

import (
	"fmt"
	"time"
)

// Observation is a single timestamped buoy record. Fields that were reported
// with an NDBC missing-data sentinel (99, 999, 9999) are nil.
type Observation struct {
	// UTC time of the observation.
	Time time.Time `json:"time"`
	// Wind direction in degrees true.
	WindDir *float64 `json:"wind_dir_deg,omitempty"`
	// Wind speed in m/s.
	WindSpeed *float64 `json:"wind_speed_ms,omitempty"`
	// Significant wave height in meters (WVHT).
	WaveHeight *float64 `json:"wave_height_m,omitempty"`
	// Dominant wave period in seconds (DPD).
	DominantPeriod *float64 `json:"dominant_period_s,omitempty"`
	// Average wave period in seconds (APD).
	AveragePeriod *float64 `json:"average_period_s,omitempty"`
	// Mean wave direction in degrees true (MWD).
	MeanWaveDir *float64 `json:"mean_wave_dir_deg,omitempty"`
}

// Observations is a time series of Observation.
type Observations []Observation

func (o Observation) String() string {
	f := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *v)
	}
	return fmt.Sprintf("{t: %s, wvht: %s, dpd: %s, mwd: %s}",
		o.Time.Format(time.RFC822),
		f(o.WaveHeight),
		f(o.DominantPeriod),
		f(o.MeanWaveDir))
}
