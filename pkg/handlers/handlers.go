package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/coastprep/pkg/cache"
	"github.com/spencer-p/coastprep/pkg/catalog"
	"github.com/spencer-p/coastprep/pkg/dean"
	"github.com/spencer-p/coastprep/pkg/metrics"
	"github.com/spencer-p/coastprep/pkg/ndbc"
	"github.com/spencer-p/coastprep/pkg/shoreline"
	"github.com/spencer-p/coastprep/pkg/waves"
)

const (
	// Buoy archives and catalog listings change rarely; cache for slightly
	// less than a day so daily clients don't see stale data.
	cacheTTL = 23 * time.Hour

	defaultCellSize = 50.0   // meters
	defaultExtent   = 1500.0 // meters seaward
)

// Register installs all coastprep routes on the router.
func Register(r *mux.Router, prefix string, cfg *Deps) {
	r.Handle("/", makeIndexHandler(cfg))
	r.Handle("/api/v1/sites", makeServeSites(cfg))
	r.Handle("/api/v1/waves", makeServeWaves(cfg))
	r.Handle("/api/v1/grid", makeServeGrid(cfg))
	r.Handle("/api/v1/scenes", makeServeScenes(cfg))
	r.Handle("/profile.svg", makeServeProfileSVG())
	r.Handle("/config", makeConfigProfile(prefix, cfg))
}

func makeServeSites(cfg *Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(cfg.Sites.Sites); err != nil {
			log.Printf("Failed to encode sites: %+v", err)
		}
	})
}

// makeServeWaves serves the wave climate summary for a buoy and year range.
func makeServeWaves(cfg *Deps) http.Handler {
	timeCache := cache.NewTimed(cacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cache based on method and URL, which should encapsulate the query.
		key := fmt.Sprintf("%s %s", r.Method, r.URL)

		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		log.Println("No cache data")

		station, years, err := waveParams(r, cfg)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Bad query: %+v", err)
			return
		}

		start := time.Now()
		obs, err := ndbc.GetHistory(station, years)
		metrics.ObserveFetch("ndbc", time.Since(start), err)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to get data: %+v", err)
			log.Printf("Failed to get data: %+v", err)
			return
		}

		forcing, err := waves.Summarize(obs)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to summarize: %+v", err)
			log.Printf("Failed to summarize: %+v", err)
			return
		}

		saveForcingRun(r.FormValue("site"), station, years, forcing)

		// Duplicate the http response onto a buffer for the cache.
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(mw).Encode(forcing); err != nil {
			log.Printf("Failed to encode JSON result: %+v", err)
		}

		// Save the result asynchronously as the cache may block.
		go func() {
			timeCache.Set(key, toCache.Bytes())
		}()
	})
}

// waveParams resolves the buoy station and year range for a waves request,
// either from explicit query parameters or from a named site.
func waveParams(r *http.Request, cfg *Deps) (station string, years []int, err error) {
	if name := r.FormValue("site"); name != "" {
		site, err := cfg.Sites.Site(name)
		if err != nil {
			return "", nil, err
		}
		return site.Station, site.Years, nil
	}

	station = r.FormValue("station")
	if station == "" {
		return "", nil, fmt.Errorf("station or site is required")
	}
	from, err := strconv.Atoi(r.FormValue("from"))
	if err != nil {
		return "", nil, fmt.Errorf("from year: %w", err)
	}
	to, err := strconv.Atoi(r.FormValue("to"))
	if err != nil {
		return "", nil, fmt.Errorf("to year: %w", err)
	}
	if to < from {
		return "", nil, fmt.Errorf("year range %d-%d is backwards", from, to)
	}
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return station, years, nil
}

// makeServeGrid synthesizes and serves the bathymetric grid for a site's
// digitized shoreline.
func makeServeGrid(cfg *Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site, err := cfg.Sites.Site(r.FormValue("site"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "Unknown site: %+v", err)
			return
		}

		s, err := shoreline.ReadFile(cfg.Sites.ShorelinePath(site))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to read shoreline: %+v", err)
			log.Printf("Failed to read shoreline: %+v", err)
			return
		}

		spec := dean.GridSpec{
			DX:            formFloat(r, "dx", defaultCellSize),
			DY:            formFloat(r, "dy", defaultCellSize),
			Seaward:       dean.SeawardPosY,
			SeawardExtent: formFloat(r, "extent", defaultExtent),
			ClosureDepth:  formFloat(r, "closure", 0),
		}
		if r.FormValue("seaward") == "-y" {
			spec.Seaward = dean.SeawardNegY
		}

		grid, err := dean.BuildGrid(s, profileFromForm(r), spec)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to build grid: %+v", err)
			log.Printf("Failed to build grid: %+v", err)
			return
		}

		if r.FormValue("o") == "xyz" {
			w.Header().Add("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			if err := grid.WriteXYZ(w); err != nil {
				log.Printf("Failed to write grid: %+v", err)
			}
			return
		}

		rows, cols := grid.Shape()
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"site": site.Name,
			"rows": rows,
			"cols": cols,
			"dx":   spec.DX,
			"dy":   spec.DY,
		}); err != nil {
			log.Printf("Failed to encode grid summary: %+v", err)
		}
	})
}

// makeServeScenes runs the imagery availability check for a site.
func makeServeScenes(cfg *Deps) http.Handler {
	timeCache := cache.NewTimed(cacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("%s %s", r.Method, r.URL)
		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		site, err := cfg.Sites.Site(r.FormValue("site"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "Unknown site: %+v", err)
			return
		}
		query, err := searchQueryForSite(site)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Bad site definition: %+v", err)
			return
		}

		start := time.Now()
		scenes, err := cfg.Catalog.Search(r.Context(), query)
		metrics.ObserveFetch("catalog", time.Since(start), err)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to search catalog: %+v", err)
			log.Printf("Failed to search catalog: %+v", err)
			return
		}

		roi, _ := site.ROI()
		good, flagged := catalog.ScreenDaylight(scenes, roi.Centroid(), 30*time.Minute)

		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(mw).Encode(map[string]any{
			"available": catalog.Availability(scenes),
			"good":      len(good),
			"low_sun":   len(flagged),
		}); err != nil {
			log.Printf("Failed to encode scene summary: %+v", err)
		}
		go func() {
			timeCache.Set(key, toCache.Bytes())
		}()
	})
}

func makeServeProfileSVG() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		img := newCrossShoreFromForm(r)
		w.Header().Add("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		if _, err := img.Encode(w); err != nil {
			log.Printf("Failed to encode profile SVG: %+v", err)
		}
	})
}

func profileFromForm(r *http.Request) dean.Profile {
	return dean.Profile{
		A: formFloat(r, "a", dean.Default.A),
		M: formFloat(r, "m", dean.Default.M),
	}
}

func formFloat(r *http.Request, key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(r.FormValue(key), 64); err == nil {
		return v
	}
	return fallback
}
