package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SaveScenes writes one metadata JSON file per scene under
// dir/<satellite>/<id>.json, the same site-keyed tree the downloaded
// imagery lands in.
func SaveScenes(dir string, scenes []Scene) error {
	for _, s := range scenes {
		satDir := filepath.Join(dir, s.Satellite)
		if err := os.MkdirAll(satDir, 0o755); err != nil {
			return err
		}
		blob, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(satDir, s.ID+".json")
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// LoadScenes reads every scene metadata file under dir, in time order.
func LoadScenes(dir string) ([]Scene, error) {
	var scenes []Scene
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		blob, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var s Scene
		if err := json.Unmarshal(blob, &s); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		scenes = append(scenes, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Time.Before(scenes[j].Time) })
	return scenes, nil
}
