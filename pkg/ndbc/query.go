package ndbc

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	NDBC_URL = "https://www.ndbc.noaa.gov/view_text_file.php"
	histDir  = "data/historical/stdmet/"
)

// baseURL is swapped out in tests.
var baseURL = NDBC_URL

// HistoryQuery requests one year of archived standard meteorological data
// for a station; see GetObservations.
type HistoryQuery struct {
	// Station is the NDBC station identifier, e.g. "46042".
	Station string
	// Year of the archive file.
	Year int
}

// GetObservations fetches and parses one year of standard meteorological
// data from NDBC.
func GetObservations(q *HistoryQuery) (Observations, error) {
	resp, err := http.Get(q.url().String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NDBC returned %s for station %s year %d",
			resp.Status, q.Station, q.Year)
	}

	obs, err := ParseStandardMet(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("station %s year %d: %w", q.Station, q.Year, err)
	}
	return obs, nil
}

// GetHistory fetches several consecutive archive years for a station and
// concatenates them in order.
func GetHistory(station string, years []int) (Observations, error) {
	var all Observations
	for _, year := range years {
		q := HistoryQuery{Station: station, Year: year}
		obs, err := GetObservations(&q)
		if err != nil {
			return nil, err
		}
		all = append(all, obs...)
	}
	return all, nil
}

func (q *HistoryQuery) url() *url.URL {
	addr, err := url.Parse(baseURL)
	if err != nil {
		// The constant URL always parses.
		panic(err)
	}

	vals := make(url.Values)
	vals.Add("filename", fmt.Sprintf("%sh%d.txt.gz", strings.ToLower(q.Station), q.Year))
	vals.Add("dir", histDir)
	addr.RawQuery = vals.Encode()
	return addr
}
