package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spencer-p/coastprep/pkg/ndbc"
	"github.com/spencer-p/coastprep/pkg/sites"
	"github.com/spencer-p/coastprep/pkg/waves"
)

var wavesCmd = &cobra.Command{
	Use:   "waves SITE",
	Short: "Fetch the site's buoy record and print the wave forcing climate",
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
		if site.Station == "" || len(site.Years) == 0 {
			return fmt.Errorf("site %s has no buoy station or years configured", site.Name)
		}

		obs, err := ndbc.GetHistory(site.Station, site.Years)
		if err != nil {
			return err
		}

		forcing, err := waves.Summarize(obs)
		if err != nil {
			return err
		}

		fmt.Printf("station %s, %d-%d: %s\n",
			site.Station, site.Years[0], site.Years[len(site.Years)-1], forcing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wavesCmd)
}
