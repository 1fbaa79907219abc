package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSceneStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []Scene{{
		ID:         "S2A_MSIL2A_20190212",
		Satellite:  "S2",
		Time:       time.Date(2019, time.February, 12, 19, 3, 55, 0, time.UTC),
		CloudCover: 41.7,
	}, {
		ID:         "LC08_L1TP_044034_20190802",
		Satellite:  "L8",
		Time:       time.Date(2019, time.August, 2, 18, 45, 12, 0, time.UTC),
		CloudCover: 3.1,
		Href:       "https://example.com/LC08.tif",
	}}

	if err := SaveScenes(dir, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Files land in per-satellite subdirectories.
	if _, err := os.Stat(filepath.Join(dir, "L8", "LC08_L1TP_044034_20190802.json")); err != nil {
		t.Errorf("expected L8 scene file: %v", err)
	}

	got, err := LoadScenes(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("failed round trip (-want,+got):\n%s", diff)
	}
}
