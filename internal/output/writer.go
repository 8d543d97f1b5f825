package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bnema/element-filter/internal/index"
)

// Manifest contains metadata about a filtering run
type Manifest struct {
	Version     string   `json:"version"`
	GeneratedAt string   `json:"generated_at"`
	Sources     int      `json:"sources"`
	Documents   int      `json:"documents"`
	Failed      int      `json:"failed"`
	Modes       Modes    `json:"modes"`
	Files       []string `json:"files"`
}

// Modes counts documents per filtering mode
type Modes struct {
	Protected   int `json:"protected"`
	Whitelisted int `json:"whitelisted"`
	Blacklisted int `json:"blacklisted"`
	Passthrough int `json:"passthrough"`
}

// NewManifest creates a manifest stamped with the current time
func NewManifest(now time.Time) Manifest {
	return Manifest{
		Version:     now.Format("2006.01.02"),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}

// WriteDocuments splits documents into files under dir and returns the
// written file names in sorted order
func WriteDocuments(dir, baseName string, docs []index.Document, s *Splitter) ([]string, error) {
	var names []string
	for name, part := range s.Split(docs, baseName) {
		if err := WriteJSON(dir, name+".json", part); err != nil {
			return nil, err
		}
		names = append(names, name+".json")
	}
	sort.Strings(names)
	return names, nil
}

// WriteJSON writes data as indented JSON to dir/filename
func WriteJSON(dir, filename string, data any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
