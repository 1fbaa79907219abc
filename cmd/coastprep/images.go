package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/coastprep/pkg/catalog"
	"github.com/spencer-p/coastprep/pkg/sites"
)

var (
	catalogURL string
	saveScenes bool
)

var imagesCmd = &cobra.Command{
	Use:   "images SITE",
	Short: "Check satellite imagery availability for a site",
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
		roi, err := site.ROI()
		if err != nil {
			return err
		}
		start, end, err := site.DateRange()
		if err != nil {
			return err
		}

		client := catalog.Client{URL: catalogURL}
		scenes, err := client.Search(cmd.Context(), &catalog.SearchQuery{
			Polygon:    roi,
			Start:      start,
			End:        end,
			Satellites: site.Satellites,
		})
		if err != nil {
			return err
		}

		counts := catalog.Availability(scenes)
		sats := make([]string, 0, len(counts))
		for sat := range counts {
			sats = append(sats, sat)
		}
		sort.Strings(sats)
		for _, sat := range sats {
			fmt.Printf("%s: %d images\n", sat, counts[sat])
		}

		good, flagged := catalog.ScreenDaylight(scenes, roi.Centroid(), 30*time.Minute)
		fmt.Printf("%d in good light, %d flagged for low sun\n", len(good), len(flagged))

		if saveScenes {
			if err := catalog.SaveScenes(cfg.ScenesDir(site), scenes); err != nil {
				return err
			}
			fmt.Printf("saved metadata for %d scenes to %s\n", len(scenes), cfg.ScenesDir(site))
		}
		return nil
	},
}

func init() {
	imagesCmd.Flags().StringVar(&catalogURL, "catalog", "", "override the imagery catalog search URL")
	imagesCmd.Flags().BoolVar(&saveScenes, "save", false, "save scene metadata into the site directory")
	rootCmd.AddCommand(imagesCmd)
}
