package ndbc

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ptr(v float64) *float64 { return &v }

const modernFile = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi    ft
2019 01 01 00 50 285  6.4  8.1  2.02 12.50  8.90 285 1022.1  12.7  13.0 999.0 99.0 99.00
2019 01 01 01 50 999 99.0 99.0 99.00 99.00 99.00 999 9999.0 999.0 999.0 999.0 99.0 99.00
2019 01 01 02 50 290  5.1  6.6  1.87 13.30  8.40 290 1021.8  12.5  13.0 999.0 99.0 99.00
`

func TestParseStandardMet(t *testing.T) {
	want := Observations{{
		Time:           time.Date(2019, time.January, 1, 0, 50, 0, 0, time.UTC),
		WindDir:        ptr(285),
		WindSpeed:      ptr(6.4),
		WaveHeight:     ptr(2.02),
		DominantPeriod: ptr(12.5),
		AveragePeriod:  ptr(8.9),
		MeanWaveDir:    ptr(285),
	}, {
		// Fully sentinel-coded row: everything masked.
		Time: time.Date(2019, time.January, 1, 1, 50, 0, 0, time.UTC),
	}, {
		Time:           time.Date(2019, time.January, 1, 2, 50, 0, 0, time.UTC),
		WindDir:        ptr(290),
		WindSpeed:      ptr(5.1),
		WaveHeight:     ptr(1.87),
		DominantPeriod: ptr(13.3),
		AveragePeriod:  ptr(8.4),
		MeanWaveDir:    ptr(290),
	}}

	got, err := ParseStandardMet(strings.NewReader(modernFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect parse (-want,+got):\n%s", diff)
	}
}

func TestParseStandardMetOldFormat(t *testing.T) {
	// Pre-1999 archives: bare header, no units line, no minutes column,
	// two-digit years, WD instead of WDIR.
	input := `YY MM DD hh WD   WSPD GST  WVHT  DPD   APD  MWD  BAR    ATMP  WTMP  DEWP  VIS
86 06 01 00 175  4.1  5.2  1.54  8.33  6.10 999 1015.2  14.2  13.8 999.0 99.0
86 06 01 01 180  4.6  5.7 99.00 99.00 99.00 999 1015.0  14.1  13.8 999.0 99.0
`
	want := Observations{{
		Time:           time.Date(1986, time.June, 1, 0, 0, 0, 0, time.UTC),
		WindDir:        ptr(175),
		WindSpeed:      ptr(4.1),
		WaveHeight:     ptr(1.54),
		DominantPeriod: ptr(8.33),
		AveragePeriod:  ptr(6.1),
	}, {
		Time:      time.Date(1986, time.June, 1, 1, 0, 0, 0, time.UTC),
		WindDir:   ptr(180),
		WindSpeed: ptr(4.6),
	}}

	got, err := ParseStandardMet(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect parse (-want,+got):\n%s", diff)
	}
}

func TestParseStandardMetErrors(t *testing.T) {
	table := []struct {
		name  string
		input string
	}{{
		name:  "empty input",
		input: "",
	}, {
		name:  "no year column",
		input: "A B C\n1 2 3\n",
	}, {
		name: "garbage value",
		input: `#YY  MM DD hh mm WVHT
#yr  mo dy hr mn    m
2019 01 01 00 50 tall
`,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseStandardMet(strings.NewReader(tc.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGetObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filename"); got != "46042h2019.txt.gz" {
			t.Errorf("unexpected filename %q", got)
		}
		w.Write([]byte(modernFile))
	}))
	defer srv.Close()

	// Swap the endpoint for the test server.
	defer func(orig string) { baseURL = orig }(baseURL)
	baseURL = srv.URL

	obs, err := GetObservations(&HistoryQuery{Station: "46042", Year: 2019})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(obs), 3; got != want {
		t.Errorf("got %d observations, wanted %d", got, want)
	}
}
