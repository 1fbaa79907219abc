package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/coastprep/pkg/geo"
)

var testROI = geo.Polygon{
	{Lon: -122.06, Lat: 36.94}, {Lon: -122.02, Lat: 36.94}, {Lon: -122.02, Lat: 36.97}, {Lon: -122.06, Lat: 36.97},
}

func testQuery() *SearchQuery {
	return &SearchQuery{
		Polygon:    testROI,
		Start:      time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Satellites: []string{"L8", "S2"},
	}
}

func TestQueryBody(t *testing.T) {
	body, err := testQuery().build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}

	want := map[string]any{
		"collections": []any{"landsat-8", "sentinel-2-l2a"},
		"datetime":    "2019-01-01T00:00:00Z/2020-01-01T00:00:00Z",
		"intersects": map[string]any{
			"type": "Polygon",
			"coordinates": []any{[]any{
				[]any{-122.06, 36.94},
				[]any{-122.02, 36.94},
				[]any{-122.02, 36.97},
				[]any{-122.06, 36.97},
				[]any{-122.06, 36.94},
			}},
		},
		"limit": float64(searchLimit),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect body (-want,+got):\n%s", diff)
	}
}

func TestQueryBodyErrors(t *testing.T) {
	table := []struct {
		name   string
		mutate func(*SearchQuery)
	}{{
		name:   "bad polygon",
		mutate: func(q *SearchQuery) { q.Polygon = q.Polygon[:2] },
	}, {
		name:   "empty date range",
		mutate: func(q *SearchQuery) { q.End = q.Start },
	}, {
		name:   "unknown satellite",
		mutate: func(q *SearchQuery) { q.Satellites = []string{"MODIS"} },
	}, {
		name:   "no satellites",
		mutate: func(q *SearchQuery) { q.Satellites = nil },
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			q := testQuery()
			tc.mutate(q)
			if _, err := q.build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSearch(t *testing.T) {
	const response = `{
		"type": "FeatureCollection",
		"features": [{
			"id": "LC08_L1TP_044034_20190802",
			"collection": "landsat-8",
			"properties": {"datetime": "2019-08-02T18:45:12Z", "eo:cloud_cover": 3.1},
			"assets": {"visual": {"href": "https://example.com/LC08.tif"}}
		}, {
			"id": "S2A_MSIL2A_20190212",
			"collection": "sentinel-2-l2a",
			"properties": {"datetime": "2019-02-12T19:03:55Z", "eo:cloud_cover": 41.7},
			"assets": {}
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, wanted POST", r.Method)
		}
		blob, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(blob, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Write([]byte(response))
	}))
	defer srv.Close()

	c := Client{URL: srv.URL}
	scenes, err := c.Search(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Scene{{
		ID:         "S2A_MSIL2A_20190212",
		Satellite:  "S2",
		Time:       time.Date(2019, time.February, 12, 19, 3, 55, 0, time.UTC),
		CloudCover: 41.7,
	}, {
		ID:         "LC08_L1TP_044034_20190802",
		Satellite:  "L8",
		Time:       time.Date(2019, time.August, 2, 18, 45, 12, 0, time.UTC),
		CloudCover: 3.1,
		Href:       "https://example.com/LC08.tif",
	}}
	if diff := cmp.Diff(want, scenes); diff != "" {
		t.Errorf("incorrect scenes (-want,+got):\n%s", diff)
	}
}

func TestSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := Client{URL: srv.URL}
	if _, err := c.Search(context.Background(), testQuery()); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestAvailability(t *testing.T) {
	scenes := []Scene{
		{Satellite: "L8"}, {Satellite: "L8"}, {Satellite: "S2"},
	}
	want := map[string]int{"L8": 2, "S2": 1}
	if diff := cmp.Diff(want, Availability(scenes)); diff != "" {
		t.Errorf("incorrect counts (-want,+got):\n%s", diff)
	}
}
