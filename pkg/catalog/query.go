// Package catalog implements imagery availability queries against a
// STAC-style satellite image catalog. Scenes are searched by region of
// interest polygon, date range, and satellite list; shoreline detection
// itself happens in external tooling, so only scene metadata flows through
// here.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/spencer-p/coastprep/pkg/geo"
)

const (
	DefaultURL = "https://earth-search.aws.element84.com/v1/search"

	// The catalog pages results; this is plenty for a shoreline site.
	searchLimit = 500
)

// SearchQuery describes an imagery search.
type SearchQuery struct {
	Polygon    geo.Polygon
	Start, End time.Time
	// Satellites are short names; see Collections.
	Satellites []string
}

// Client queries the catalog.
type Client struct {
	// URL of the search endpoint. Defaults to DefaultURL.
	URL string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// searchBody is the JSON POST body for the search endpoint.
type searchBody struct {
	Collections []string        `json:"collections"`
	Datetime    string          `json:"datetime"`
	Intersects  geometryGeoJSON `json:"intersects"`
	Limit       int             `json:"limit"`
}

type geometryGeoJSON struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Search returns scene metadata for every acquisition matching the query,
// sorted by time.
func (c *Client) Search(ctx context.Context, q *SearchQuery) ([]Scene, error) {
	body, err := q.build()
	if err != nil {
		return nil, err
	}

	addr := c.URL
	if addr == "" {
		addr = DefaultURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %s", resp.Status)
	}

	var result featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	scenes := make([]Scene, 0, len(result.Features))
	for _, f := range result.Features {
		s := Scene{
			ID:         f.ID,
			Satellite:  satelliteForCollection(f.Collection),
			Time:       f.Properties.Datetime,
			CloudCover: f.Properties.CloudCover,
		}
		if asset, ok := f.Assets["visual"]; ok {
			s.Href = asset.Href
		}
		scenes = append(scenes, s)
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Time.Before(scenes[j].Time) })
	return scenes, nil
}

func (q *SearchQuery) build() ([]byte, error) {
	if err := q.Polygon.Validate(); err != nil {
		return nil, fmt.Errorf("bad region of interest: %w", err)
	}
	if !q.End.After(q.Start) {
		return nil, fmt.Errorf("date range %s to %s is empty",
			q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))
	}

	collections := make([]string, 0, len(q.Satellites))
	for _, sat := range q.Satellites {
		c, ok := Collections[sat]
		if !ok {
			return nil, fmt.Errorf("unknown satellite %q", sat)
		}
		collections = append(collections, c)
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("no satellites requested")
	}

	return json.Marshal(searchBody{
		Collections: collections,
		Datetime: fmt.Sprintf("%s/%s",
			q.Start.UTC().Format(time.RFC3339),
			q.End.UTC().Format(time.RFC3339)),
		Intersects: geometryGeoJSON{
			Type:        "Polygon",
			Coordinates: [][][]float64{q.Polygon.Ring()},
		},
		Limit: searchLimit,
	})
}

// Availability counts scenes per satellite, the number the notebooks print
// before a user commits to downloading anything.
func Availability(scenes []Scene) map[string]int {
	counts := make(map[string]int)
	for _, s := range scenes {
		counts[s.Satellite]++
	}
	return counts
}
