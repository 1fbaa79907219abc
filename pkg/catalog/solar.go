package catalog

import (
	"time"

	"github.com/keep94/sunrise"

	"github.com/spencer-p/coastprep/pkg/geo"
)

const dayFormat = "20060102"

// DaylightOK reports whether the scene was acquired with the sun comfortably
// up at the site: at least margin after sunrise and before sunset. Low sun
// angles wreck the water/sand contrast the shoreline detector depends on.
func DaylightOK(s Scene, at geo.Point, margin time.Duration) bool {
	var sun sunrise.Sunrise
	sun.Around(at.Lat, at.Lon, s.Time)

	// Make sure we are looking at the correct day. The sunrise package is
	// not very clean with its dates.
	aligned := false
	for i := 0; i < 3; i++ {
		if sameDay(s.Time, sun.Sunrise()) {
			aligned = true
			break
		}
		sun.AddDays(1)
	}
	if !aligned {
		return false
	}

	return s.Time.After(sun.Sunrise().Add(margin)) &&
		s.Time.Before(sun.Sunset().Add(-margin))
}

// ScreenDaylight splits scenes into those acquired in good light and those
// flagged for low sun.
func ScreenDaylight(scenes []Scene, at geo.Point, margin time.Duration) (ok, flagged []Scene) {
	for _, s := range scenes {
		if DaylightOK(s, at, margin) {
			ok = append(ok, s)
		} else {
			flagged = append(flagged, s)
		}
	}
	return ok, flagged
}

func sameDay(t, t2 time.Time) bool {
	return t.UTC().Format(dayFormat) == t2.UTC().Format(dayFormat)
}
