package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alevsk/oscal-ops/internal/loader"
	"github.com/alevsk/oscal-ops/internal/model"
)

// Entry summarizes one stored artifact for listings and the read-only API
type Entry struct {
	Kind    model.Kind `json:"kind" yaml:"kind"`
	Name    string     `json:"name" yaml:"name"`
	ID      string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Version string     `json:"version,omitempty" yaml:"version,omitempty"`
	Format  string     `json:"format" yaml:"format"`
	Path    string     `json:"path" yaml:"path"`
	ModTime time.Time  `json:"modified" yaml:"modified"`
}

// Inventory scans the workspace rooted at root and returns one entry per
// stored artifact, ordered by kind then name. Artifacts whose document can
// no longer be parsed are still listed, with the identity fields left empty.
func Inventory(root string) ([]Entry, error) {
	var entries []Entry
	for _, kind := range model.AllKinds() {
		kindDir := filepath.Join(root, kind.Dir())
		dirents, err := os.ReadDir(kindDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error reading %s: %w", kindDir, err)
		}

		// os.ReadDir returns entries sorted by name
		for _, d := range dirents {
			if !d.IsDir() {
				continue
			}
			name := d.Name()
			path, err := ArtifactFile(root, kind, name)
			if err != nil {
				// directory without a recognizable document file
				continue
			}

			entry := Entry{Kind: kind, Name: name}
			if format, err := loader.FormatForPath(path); err == nil {
				entry.Format = format.String()
			}
			if rel, err := filepath.Rel(root, path); err == nil {
				entry.Path = rel
			} else {
				entry.Path = path
			}
			if info, err := os.Stat(path); err == nil {
				entry.ModTime = info.ModTime()
			}
			if raw, err := loader.Load(path); err == nil {
				if doc, err := model.NewDocument(kind, raw); err == nil {
					entry.ID = doc.ID
					entry.Title = doc.Title
					entry.Version = doc.Version
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
