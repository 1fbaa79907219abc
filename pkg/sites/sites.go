// Package sites defines the coastal study sites the pipeline runs over and
// the on-disk layout of everything produced for them. Sites come from a YAML
// config file; outputs live in a directory tree keyed by site name.
package sites

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/spencer-p/coastprep/pkg/geo"
)

const dateFormat = "2006-01-02"

// Site is one coastal study site.
type Site struct {
	// Name keys the site's output directory.
	Name string `mapstructure:"name"`
	// Polygon is the region of interest as [lon, lat] pairs.
	Polygon [][]float64 `mapstructure:"polygon"`
	// Start and End bound the imagery search, as YYYY-MM-DD.
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
	// Satellites to search, e.g. [L8, S2].
	Satellites []string `mapstructure:"satellites"`
	// Station is the NDBC buoy providing the wave climate.
	Station string `mapstructure:"station"`
	// Years of buoy history to average.
	Years []int `mapstructure:"years"`
}

// Config is the full site configuration file.
type Config struct {
	// DataDir roots the output tree. Defaults to "data".
	DataDir string `mapstructure:"data_dir"`
	Sites   []Site `mapstructure:"sites"`
}

// Load reads a YAML site configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("data_dir", "data")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range cfg.Sites {
		if err := cfg.Sites[i].validate(); err != nil {
			return nil, fmt.Errorf("%s: site %d: %w", path, i, err)
		}
	}
	return &cfg, nil
}

// Site finds a site by name.
func (c *Config) Site(name string) (*Site, error) {
	for i := range c.Sites {
		if c.Sites[i].Name == name {
			return &c.Sites[i], nil
		}
	}
	return nil, fmt.Errorf("no site named %q", name)
}

func (s *Site) validate() error {
	if s.Name == "" {
		return fmt.Errorf("site has no name")
	}
	roi, err := s.ROI()
	if err != nil {
		return err
	}
	if err := roi.Validate(); err != nil {
		return err
	}
	if s.Start != "" || s.End != "" {
		if _, _, err := s.DateRange(); err != nil {
			return err
		}
	}
	return nil
}

// ROI converts the config polygon to a geo.Polygon.
func (s *Site) ROI() (geo.Polygon, error) {
	roi := make(geo.Polygon, 0, len(s.Polygon))
	for i, pair := range s.Polygon {
		if len(pair) != 2 {
			return nil, fmt.Errorf("polygon vertex %d has %d coordinates, want [lon, lat]", i, len(pair))
		}
		roi = append(roi, geo.Point{Lon: pair[0], Lat: pair[1]})
	}
	return roi, nil
}

// DateRange parses the imagery search window.
func (s *Site) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(dateFormat, s.Start)
	if err != nil {
		return start, end, fmt.Errorf("start date: %w", err)
	}
	end, err = time.Parse(dateFormat, s.End)
	if err != nil {
		return start, end, fmt.Errorf("end date: %w", err)
	}
	return start, end, nil
}

// Dir is the site's directory under the data dir.
func (c *Config) Dir(s *Site) string {
	return filepath.Join(c.DataDir, s.Name)
}

// ShorelinePath is where the digitized reference shoreline is handed off.
func (c *Config) ShorelinePath(s *Site) string {
	return filepath.Join(c.Dir(s), "pt_coords.txt")
}

// GridPath is where the synthesized bathymetry grid lands.
func (c *Config) GridPath(s *Site) string {
	return filepath.Join(c.Dir(s), "grid", "bathy.xyz")
}

// ScenesDir holds per-satellite scene metadata for the site.
func (c *Config) ScenesDir(s *Site) string {
	return filepath.Join(c.Dir(s), "scenes")
}
