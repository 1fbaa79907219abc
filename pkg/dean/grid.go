package dean

import (
	"fmt"
	"io"
	"math"

	"github.com/spencer-p/coastprep/pkg/shoreline"
)

// Seaward names which side of the shoreline the ocean is on. The shore is
// treated as running along the x axis.
type Seaward int

const (
	// SeawardPosY puts the ocean at increasing y.
	SeawardPosY Seaward = iota
	// SeawardNegY puts the ocean at decreasing y.
	SeawardNegY
)

// GridSpec controls grid generation.
type GridSpec struct {
	// DX, DY are the cell sizes in meters.
	DX, DY float64
	// Seaward orients the profile.
	Seaward Seaward
	// ClosureDepth, if positive, caps synthesized depths. Zero means no cap.
	ClosureDepth float64
	// SeawardExtent, if positive, extends the grid that many meters past the
	// shoreline bounding box in the seaward direction.
	SeawardExtent float64
}

// Grid is a synthesized bathymetric grid: three co-indexed 2-D arrays of
// x coordinate, y coordinate, and depth. Index order is [row][col] where rows
// step through y and cols through x.
type Grid struct {
	X     [][]float64
	Y     [][]float64
	Depth [][]float64
}

// Shape returns (rows, cols).
func (g *Grid) Shape() (rows, cols int) {
	if len(g.Depth) == 0 {
		return 0, 0
	}
	return len(g.Depth), len(g.Depth[0])
}

// BuildGrid covers the shoreline's bounding box (plus any seaward extent) at
// the requested resolution and fills each cell with the Dean profile depth
// for its cross-shore distance from the interpolated shoreline. Cells on the
// landward side get zero depth.
func BuildGrid(s shoreline.Shoreline, p Profile, spec GridSpec) (*Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("bad shoreline: %w", err)
	}
	if spec.DX <= 0 || spec.DY <= 0 {
		return nil, fmt.Errorf("cell sizes (%v, %v) must be positive", spec.DX, spec.DY)
	}
	if !finite(spec.SeawardExtent) || !finite(spec.ClosureDepth) {
		return nil, fmt.Errorf("grid spec contains non-finite values")
	}

	minX, minY, maxX, maxY := s.Bounds()
	switch spec.Seaward {
	case SeawardPosY:
		maxY += spec.SeawardExtent
	case SeawardNegY:
		minY -= spec.SeawardExtent
	default:
		return nil, fmt.Errorf("unknown seaward orientation %d", spec.Seaward)
	}

	cols := int(math.Floor((maxX-minX)/spec.DX)) + 1
	rows := int(math.Floor((maxY-minY)/spec.DY)) + 1

	g := &Grid{
		X:     make([][]float64, rows),
		Y:     make([][]float64, rows),
		Depth: make([][]float64, rows),
	}

	// Interpolate the shoreline position once per column.
	shoreY := make([]float64, cols)
	for j := 0; j < cols; j++ {
		shoreY[j] = s.YAt(minX + float64(j)*spec.DX)
	}

	for i := 0; i < rows; i++ {
		g.X[i] = make([]float64, cols)
		g.Y[i] = make([]float64, cols)
		g.Depth[i] = make([]float64, cols)
		y := minY + float64(i)*spec.DY
		for j := 0; j < cols; j++ {
			g.X[i][j] = minX + float64(j)*spec.DX
			g.Y[i][j] = y

			dist := y - shoreY[j]
			if spec.Seaward == SeawardNegY {
				dist = -dist
			}
			d := p.depth(dist)
			if spec.ClosureDepth > 0 && d > spec.ClosureDepth {
				d = spec.ClosureDepth
			}
			g.Depth[i][j] = d
		}
	}

	return g, nil
}

// WriteXYZ dumps the grid as "x y depth" rows, the hand-off format for the
// downstream coastline model.
func (g *Grid) WriteXYZ(w io.Writer) error {
	rows, cols := g.Shape()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_, err := fmt.Fprintf(w, "%f %f %f\n", g.X[i][j], g.Y[i][j], g.Depth[i][j])
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
