// Package workspace manages initialized project trees: the marker directory
// that identifies a root, the per-kind artifact layout beneath it, and the
// metadata stored at initialization time.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/oscal-ops/internal/model"
)

const (
	// MarkerDir is the hidden directory that identifies a workspace root
	MarkerDir = ".oscal-ops"
	// MetaFile is the metadata file stored inside MarkerDir
	MetaFile = "workspace.yaml"
)

// Error types for workspace operations
var (
	ErrNotAWorkspace      = fmt.Errorf("not inside an initialized workspace")
	ErrAlreadyInitialized = fmt.Errorf("workspace already initialized")
	ErrArtifactExists     = fmt.Errorf("artifact already exists")
	ErrArtifactNotFound   = fmt.Errorf("artifact not found")
	ErrWriteFailure       = fmt.Errorf("write failure")
)

// Meta describes an initialized workspace
type Meta struct {
	UUID    string    `yaml:"uuid" json:"uuid"`
	Created time.Time `yaml:"created" json:"created"`
}

// Find walks upward from start looking for the marker directory and returns
// the absolute path of the workspace root that contains it.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAWorkspace, err)
	}

	for {
		marker := filepath.Join(dir, MarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s directory above %s", ErrNotAWorkspace, MarkerDir, start)
		}
		dir = parent
	}
}

// Contains reports whether path lies inside root. The comparison is lexical
// on absolute paths, so path does not need to exist.
func Contains(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Init creates the workspace skeleton under dir: one directory per model
// kind plus the marker directory with freshly generated metadata. It fails
// if dir is already a workspace root.
func Init(dir string) (*Meta, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	marker := filepath.Join(root, MarkerDir)
	if _, err := os.Stat(marker); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, root)
	}

	for _, kind := range model.AllKinds() {
		if err := os.MkdirAll(filepath.Join(root, kind.Dir()), 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrWriteFailure, kind.Dir(), err)
		}
	}
	if err := os.MkdirAll(marker, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrWriteFailure, MarkerDir, err)
	}

	meta := &Meta{
		UUID:    uuid.NewString(),
		Created: time.Now().UTC(),
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding metadata: %v", ErrWriteFailure, err)
	}
	if err := os.WriteFile(filepath.Join(marker, MetaFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing metadata: %v", ErrWriteFailure, err)
	}

	return meta, nil
}

// ReadMeta loads the metadata written by Init for the workspace rooted at
// root.
func ReadMeta(root string) (*Meta, error) {
	path := filepath.Join(root, MarkerDir, MetaFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAWorkspace, root)
	}

	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("error parsing workspace metadata %s: %w", path, err)
	}
	return &meta, nil
}
