package catalog

import (
	"fmt"
	"time"
)

// Scene is the metadata we keep for one satellite acquisition.
type Scene struct {
	ID         string    `json:"id"`
	Satellite  string    `json:"satellite"`
	Time       time.Time `json:"time"`
	CloudCover float64   `json:"cloud_cover"`
	// Href points at the scene's primary visual asset.
	Href string `json:"href,omitempty"`
}

func (s Scene) String() string {
	return fmt.Sprintf("%s %s %s (%.0f%% cloud)",
		s.Satellite, s.Time.Format("2006-01-02 15:04"), s.ID, s.CloudCover)
}

// Collections maps the short satellite names used in site configs to the
// catalog collection identifiers they search.
var Collections = map[string]string{
	"L5": "landsat-5",
	"L7": "landsat-7",
	"L8": "landsat-8",
	"L9": "landsat-9",
	"S2": "sentinel-2-l2a",
}

// featureCollection is the catalog's GeoJSON search response.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Collection string     `json:"collection"`
	Properties properties `json:"properties"`
	Assets     map[string]struct {
		Href string `json:"href"`
	} `json:"assets"`
}

type properties struct {
	Datetime   time.Time `json:"datetime"`
	CloudCover float64   `json:"eo:cloud_cover"`
}

// satelliteForCollection inverts Collections for decoding responses.
func satelliteForCollection(collection string) string {
	for sat, c := range Collections {
		if c == collection {
			return sat
		}
	}
	return collection
}
