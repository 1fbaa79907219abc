// Package shoreline reads, writes, and interpolates digitized reference
// shorelines. A shoreline is an ordered list of (x, y) points in a projected
// coordinate system (meters), produced by an external digitization step and
// handed off as a plain text file of "x y" pairs.
package shoreline

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
)

// Point is a projected coordinate in meters.
type Point struct {
	X, Y float64
}

// Shoreline is an ordered sequence of digitized shoreline points.
type Shoreline []Point

// Validate checks that the shoreline has at least two points and that every
// coordinate is finite.
func (s Shoreline) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("shoreline has %d points, need at least 2", len(s))
	}
	for i, pt := range s {
		if !finite(pt.X) || !finite(pt.Y) {
			return fmt.Errorf("point %d (%v, %v) is not finite", i, pt.X, pt.Y)
		}
	}
	return nil
}

// Bounds returns the bounding box of the shoreline.
func (s Shoreline) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range s {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return
}

// YAt linearly interpolates the shoreline's y position at the given x.
// Positions outside the digitized extent clamp to the nearest endpoint.
// The shoreline is treated as a function of x; points are sorted by x
// internally, so digitization order does not matter.
func (s Shoreline) YAt(x float64) float64 {
	pts := s.sortedByX()
	if len(pts) == 0 {
		return math.NaN()
	}
	if x <= pts[0].X {
		return pts[0].Y
	}
	if x >= pts[len(pts)-1].X {
		return pts[len(pts)-1].Y
	}
	// Binary search for the segment containing x.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	left, right := pts[i-1], pts[i]
	if right.X == left.X {
		return left.Y
	}
	frac := (x - left.X) / (right.X - left.X)
	return left.Y + frac*(right.Y-left.Y)
}

func (s Shoreline) sortedByX() Shoreline {
	pts := make(Shoreline, len(s))
	copy(pts, s)
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// Read parses a shoreline from "x y" lines. Blank lines and lines beginning
// with '#' are skipped.
func Read(r io.Reader) (Shoreline, error) {
	var s Shoreline
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var pt Point
		if _, err := fmt.Sscanf(line, "%f %f", &pt.X, &pt.Y); err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", lineno, line, err)
		}
		s = append(s, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFile reads a shoreline from a pt_coords.txt style file.
func ReadFile(path string) (Shoreline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write dumps the shoreline as "x y" lines.
func (s Shoreline) Write(w io.Writer) error {
	for _, pt := range s {
		if _, err := fmt.Fprintf(w, "%f %f\n", pt.X, pt.Y); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the shoreline to path, replacing any existing file.
func (s Shoreline) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
