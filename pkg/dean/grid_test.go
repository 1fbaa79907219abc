package dean

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/spencer-p/coastprep/pkg/shoreline"
)

// straightShore is a west-east shoreline at y=1000 spanning x in [0, 500].
var straightShore = shoreline.Shoreline{
	{X: 0, Y: 1000},
	{X: 250, Y: 1000},
	{X: 500, Y: 1000},
}

func TestBuildGridShape(t *testing.T) {
	g, err := BuildGrid(straightShore, Default, GridSpec{
		DX: 50, DY: 25,
		Seaward:       SeawardPosY,
		SeawardExtent: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// x spans [0, 500] at dx=50 -> 11 columns.
	// y spans [1000, 1200] at dy=25 -> 9 rows.
	rows, cols := g.Shape()
	if rows != 9 || cols != 11 {
		t.Errorf("shape = (%d, %d), wanted (9, 11)", rows, cols)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			for _, v := range []float64{g.X[i][j], g.Y[i][j], g.Depth[i][j]} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("cell (%d, %d) contains non-finite value", i, j)
				}
			}
		}
	}
}

func TestBuildGridDepths(t *testing.T) {
	g, err := BuildGrid(straightShore, Default, GridSpec{
		DX: 100, DY: 100,
		Seaward:       SeawardPosY,
		SeawardExtent: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Row 0 sits on the shoreline; depth must be zero.
	for j := range g.Depth[0] {
		if g.Depth[0][j] != 0 {
			t.Errorf("shoreline cell %d has depth %v, wanted 0", j, g.Depth[0][j])
		}
	}

	// Depths increase monotonically moving seaward down each column.
	rows, cols := g.Shape()
	for j := 0; j < cols; j++ {
		for i := 1; i < rows; i++ {
			if g.Depth[i][j] < g.Depth[i-1][j] {
				t.Errorf("column %d: depth decreased seaward at row %d", j, i)
			}
		}
	}

	// The last row is 1000 m offshore: about 10 m deep.
	if got := g.Depth[rows-1][0]; math.Abs(got-10) > 0.01 {
		t.Errorf("depth 1000 m offshore = %v, wanted approximately 10", got)
	}
}

func TestBuildGridSeawardNegY(t *testing.T) {
	g, err := BuildGrid(straightShore, Default, GridSpec{
		DX: 100, DY: 100,
		Seaward:       SeawardNegY,
		SeawardExtent: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, _ := g.Shape()
	// Row 0 is now the deepest (southernmost) edge.
	if got := g.Depth[0][0]; math.Abs(got-10) > 0.01 {
		t.Errorf("seaward edge depth = %v, wanted approximately 10", got)
	}
	if got := g.Depth[rows-1][0]; got != 0 {
		t.Errorf("shoreline edge depth = %v, wanted 0", got)
	}
}

func TestBuildGridClosureDepth(t *testing.T) {
	g, err := BuildGrid(straightShore, Default, GridSpec{
		DX: 100, DY: 100,
		Seaward:       SeawardPosY,
		SeawardExtent: 2000,
		ClosureDepth:  8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, cols := g.Shape()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.Depth[i][j] > 8 {
				t.Fatalf("cell (%d, %d) depth %v exceeds closure depth", i, j, g.Depth[i][j])
			}
		}
	}
}

func TestBuildGridRejectsBadInput(t *testing.T) {
	table := []struct {
		name  string
		shore shoreline.Shoreline
		spec  GridSpec
	}{{
		name:  "one point shoreline",
		shore: shoreline.Shoreline{{X: 0, Y: 0}},
		spec:  GridSpec{DX: 10, DY: 10},
	}, {
		name:  "zero cell size",
		shore: straightShore,
		spec:  GridSpec{DX: 0, DY: 10},
	}, {
		name:  "non-finite shoreline",
		shore: shoreline.Shoreline{{X: 0, Y: 0}, {X: math.NaN(), Y: 5}},
		spec:  GridSpec{DX: 10, DY: 10},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildGrid(tc.shore, Default, tc.spec); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteXYZ(t *testing.T) {
	g, err := BuildGrid(straightShore, Default, GridSpec{
		DX: 250, DY: 500,
		Seaward:       SeawardPosY,
		SeawardExtent: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := g.WriteXYZ(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	rows, cols := g.Shape()
	if got, want := len(lines), rows*cols; got != want {
		t.Errorf("wrote %d lines, wanted %d", got, want)
	}
	if got, want := lines[0], "0.000000 1000.000000 0.000000"; got != want {
		t.Errorf("first line %q, wanted %q", got, want)
	}
}
