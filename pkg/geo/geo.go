// Package geo holds the small amount of geographic geometry coastprep needs:
// lon/lat points, region-of-interest polygons, and their bounding boxes.
package geo

import (
	"fmt"
	"math"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Polygon is an ordered ring of vertices describing a region of interest.
// It does not need to be explicitly closed; Ring closes it.
type Polygon []Point

// Bounds is a lon/lat aligned bounding box.
type Bounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

func (p Point) valid() error {
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) ||
		math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return fmt.Errorf("coordinate (%v, %v) is not finite", p.Lon, p.Lat)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// Validate checks that the polygon has enough vertices and that every vertex
// is a finite coordinate in physical range.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return fmt.Errorf("polygon has %d vertices, need at least 3", len(p))
	}
	for i, pt := range p {
		if err := pt.valid(); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}
	return nil
}

// Bounds returns the bounding box of the polygon's vertices.
func (p Polygon) Bounds() Bounds {
	b := Bounds{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
	for _, pt := range p {
		b.MinLon = math.Min(b.MinLon, pt.Lon)
		b.MaxLon = math.Max(b.MaxLon, pt.Lon)
		b.MinLat = math.Min(b.MinLat, pt.Lat)
		b.MaxLat = math.Max(b.MaxLat, pt.Lat)
	}
	return b
}

// Centroid returns the mean of the polygon's vertices. Regions of interest
// here are small enough that the vertex mean is a fine stand-in for a true
// spherical centroid.
func (p Polygon) Centroid() Point {
	var c Point
	if len(p) == 0 {
		return c
	}
	for _, pt := range p {
		c.Lon += pt.Lon
		c.Lat += pt.Lat
	}
	c.Lon /= float64(len(p))
	c.Lat /= float64(len(p))
	return c
}

// Ring returns the polygon as a closed GeoJSON linear ring in [lon, lat]
// order. The first vertex is repeated at the end if needed.
func (p Polygon) Ring() [][]float64 {
	ring := make([][]float64, 0, len(p)+1)
	for _, pt := range p {
		ring = append(ring, []float64{pt.Lon, pt.Lat})
	}
	if len(p) > 0 && p[0] != p[len(p)-1] {
		ring = append(ring, []float64{p[0].Lon, p[0].Lat})
	}
	return ring
}
