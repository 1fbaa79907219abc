package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spencer-p/coastprep/pkg/dean"
	"github.com/spencer-p/coastprep/pkg/shoreline"
	"github.com/spencer-p/coastprep/pkg/sites"
)

var (
	cellSize     float64
	extent       float64
	closureDepth float64
	deanA        float64
	deanM        float64
	seawardNegY  bool
)

var gridCmd = &cobra.Command{
	Use:   "grid SITE",
	Short: "Synthesize a bathymetric grid from the site's digitized shoreline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := sites.Load(sitesFile)
		if err != nil {
			return err
		}
		site, err := cfg.Site(args[0])
		if err != nil {
			return err
		}

		s, err := shoreline.ReadFile(cfg.ShorelinePath(site))
		if err != nil {
			return fmt.Errorf("no digitized shoreline for %s: %w", site.Name, err)
		}

		spec := dean.GridSpec{
			DX:            cellSize,
			DY:            cellSize,
			Seaward:       dean.SeawardPosY,
			SeawardExtent: extent,
			ClosureDepth:  closureDepth,
		}
		if seawardNegY {
			spec.Seaward = dean.SeawardNegY
		}

		grid, err := dean.BuildGrid(s, dean.Profile{A: deanA, M: deanM}, spec)
		if err != nil {
			return err
		}

		out := cfg.GridPath(site)
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := grid.WriteXYZ(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		rows, cols := grid.Shape()
		fmt.Printf("wrote %dx%d grid (%g m cells) to %s\n", rows, cols, cellSize, out)
		return nil
	},
}

func init() {
	gridCmd.Flags().Float64Var(&cellSize, "cell", 50, "grid cell size in meters")
	gridCmd.Flags().Float64Var(&extent, "extent", 1500, "seaward extent beyond the shoreline in meters")
	gridCmd.Flags().Float64Var(&closureDepth, "closure", 0, "depth of closure cap in meters (0 for none)")
	gridCmd.Flags().Float64Var(&deanA, "a", dean.Default.A, "Dean profile scale parameter A")
	gridCmd.Flags().Float64Var(&deanM, "m", dean.Default.M, "Dean profile shape parameter m")
	gridCmd.Flags().BoolVar(&seawardNegY, "seaward-neg-y", false, "ocean lies at decreasing y")
	rootCmd.AddCommand(gridCmd)
}
