package handlers

import (
	"fmt"
	"net/http"

	"github.com/spencer-p/coastprep/pkg/catalog"
	"github.com/spencer-p/coastprep/pkg/sites"
	"github.com/spencer-p/coastprep/pkg/visualize"
)

// Deps carries the site configuration and upstream clients into the
// handlers.
type Deps struct {
	Sites   *sites.Config
	Catalog *catalog.Client
}

func searchQueryForSite(s *sites.Site) (*catalog.SearchQuery, error) {
	roi, err := s.ROI()
	if err != nil {
		return nil, err
	}
	start, end, err := s.DateRange()
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", s.Name, err)
	}
	return &catalog.SearchQuery{
		Polygon:    roi,
		Start:      start,
		End:        end,
		Satellites: s.Satellites,
	}, nil
}

func newCrossShoreFromForm(r *http.Request) *visualize.CrossShore {
	img := visualize.NewCrossShore(profileFromForm(r), formFloat(r, "extent", defaultExtent))
	if closure := formFloat(r, "closure", 0); closure > 0 {
		img.SetClosureDepth(closure)
	}
	return img
}
