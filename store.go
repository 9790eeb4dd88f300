package weeklyperf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fetched frames are persisted as one JSON document per source under a data
// directory, so reports re-run offline on the last fetch.

// SaveFrame writes a frame to dir, creating the directory if needed.
func SaveFrame(dir string, f *RawFrame) error {
	if f.Source == "" {
		return fmt.Errorf("cannot save a frame without a source name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create data dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, f.Source+".json")
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create frame file %q: %w", path, err)
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("cannot encode frame file %q: %w", path, err)
	}
	return nil
}

// LoadFrame reads one source's frame from dir.
func LoadFrame(dir, source string) (*RawFrame, error) {
	path := filepath.Join(dir, source+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read frame file %q: %w", path, err)
	}
	f := new(RawFrame)
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("cannot decode frame file %q: %w", path, err)
	}
	return f, nil
}

// LoadFrames reads every stored frame in dir, sorted by source name.
func LoadFrames(dir string) ([]*RawFrame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read data dir %q: %w", dir, err)
	}
	var frames []*RawFrame
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		f, err := LoadFrame(dir, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Source < frames[j].Source })
	return frames, nil
}
