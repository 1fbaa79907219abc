// Package visualize renders the synthesized cross-shore profile as SVG for
// the dashboard.
package visualize

import (
	"fmt"
	"io"
	"math"

	"github.com/spencer-p/coastprep/pkg/dean"
)

const (
	width  = 1200
	height = 300

	// samples along the profile curve.
	samples = 120
)

// CrossShore draws a Dean profile from the shoreline out to a maximum
// cross-shore distance.
type CrossShore struct {
	profile dean.Profile
	maxDist float64
	// closure, if positive, draws the depth-of-closure line.
	closure float64
}

func NewCrossShore(p dean.Profile, maxDist float64) *CrossShore {
	return &CrossShore{
		profile: p,
		maxDist: maxDist,
	}
}

// SetClosureDepth marks the depth of closure on the figure.
func (img *CrossShore) SetClosureDepth(depth float64) {
	img.closure = depth
}

// Encode writes the figure as an SVG document.
func (img *CrossShore) Encode(w io.Writer) (int, error) {
	if img.maxDist <= 0 {
		return 0, fmt.Errorf("cross-shore extent %v must be positive", img.maxDist)
	}

	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	depths := img.profile.Sample(img.maxDist, samples)
	maxDepth := depths[len(depths)-1]
	if maxDepth <= 0 {
		maxDepth = 1
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))

	// Water fills the frame; the sand wedge is drawn over it.
	io(fmt.Fprintf(w, `<rect class="water" fill="skyblue" x="0" y="0" width="%d" height="%d"/>`,
		width, height))

	// The seabed as a filled polygon down to the bottom of the frame.
	io(fmt.Fprintf(w, `<path class="seabed" fill="#e9c46a" d="M 0,0 `))
	for i, d := range depths {
		io(fmt.Fprintf(w, `L %d,%d `, img.distToX(float64(i)*img.maxDist/float64(samples-1)), depthToY(d, maxDepth)))
	}
	io(fmt.Fprintf(w, `L %d,%d L 0,%d z"/>`, width, height, height))

	// Depth gridlines every couple meters with labels.
	step := gridStep(maxDepth)
	for d := step; d < maxDepth; d += step {
		y := depthToY(d, maxDepth)
		io(fmt.Fprintf(w, `<line class="grid" stroke="white" stroke-opacity="40%%" x1="0" y1="%d" x2="%d" y2="%d"/>`,
			y, width, y))
		io(fmt.Fprintf(w, `<text class="label" x="4" y="%d" font-size="12">%g m</text>`, y-4, d))
	}

	if img.closure > 0 && img.closure < maxDepth {
		y := depthToY(img.closure, maxDepth)
		io(fmt.Fprintf(w, `<line class="closure" stroke="#e76f51" stroke-dasharray="8" x1="0" y1="%d" x2="%d" y2="%d"/>`,
			y, width, y))
	}

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

func (img *CrossShore) distToX(dist float64) int {
	return int(dist / img.maxDist * width)
}

// depthToY scales a depth to a pixel row, shoreline at the top.
func depthToY(depth, maxDepth float64) int {
	return int(depth / maxDepth * height)
}

// gridStep picks a round gridline spacing that yields a handful of lines.
func gridStep(maxDepth float64) float64 {
	step := math.Pow(10, math.Floor(math.Log10(maxDepth)))
	if maxDepth/step < 3 {
		step /= 2
	}
	return step
}
