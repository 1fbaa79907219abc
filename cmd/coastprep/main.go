package main

import (
	"os"

	"github.com/spf13/cobra"
)

var sitesFile string

// rootCmd is the base of the coastprep pipeline CLI. Each subcommand is one
// stage: imagery availability, grid synthesis, wave climate.
var rootCmd = &cobra.Command{
	Use:   "coastprep",
	Short: "Prepare coastline evolution model inputs for a coastal site",
	Long: `coastprep runs the preprocessing pipeline for a coastline evolution
model: check satellite imagery availability for a site, synthesize a
bathymetric grid from a digitized shoreline, and reduce buoy records to wave
forcing.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sitesFile, "sites", "sites.yaml", "site configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
