package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alevsk/oscal-ops/internal/loader"
	"github.com/alevsk/oscal-ops/internal/model"
)

// artifactExtensions are probed in order when locating a stored artifact file.
var artifactExtensions = []string{".json", ".yaml", ".yml"}

// ArtifactDir returns the directory that stores the named artifact of kind.
func ArtifactDir(root string, kind model.Kind, name string) string {
	return filepath.Join(root, kind.Dir(), name)
}

// HasArtifact reports whether an artifact named name of the given kind
// already exists under root.
func HasArtifact(root string, kind model.Kind, name string) bool {
	info, err := os.Stat(ArtifactDir(root, kind, name))
	return err == nil && info.IsDir()
}

// ArtifactFile returns the path of the document file stored for (kind, name).
func ArtifactFile(root string, kind model.Kind, name string) (string, error) {
	dir := ArtifactDir(root, kind, name)
	for _, ext := range artifactExtensions {
		path := filepath.Join(dir, string(kind)+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrArtifactNotFound, kind.Dir(), name)
}

// LoadArtifact reads the stored document for (kind, name) back into memory.
func LoadArtifact(root string, kind model.Kind, name string) (*model.Document, error) {
	path, err := ArtifactFile(root, kind, name)
	if err != nil {
		return nil, err
	}
	raw, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return model.NewDocument(kind, raw)
}

// WriteArtifact stores data as the document file for (kind, name) under
// root. filename is the basename within the artifact directory, for example
// "catalog.json". The file is written into a hidden temporary directory that
// is renamed into place, so the artifact directory either exists in full or
// not at all. A pre-existing destination is never overwritten.
func WriteArtifact(root string, kind model.Kind, name, filename string, data []byte) (string, error) {
	dir := ArtifactDir(root, kind, name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s/%s", ErrArtifactExists, kind.Dir(), name)
	}

	kindDir := filepath.Join(root, kind.Dir())
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrWriteFailure, kindDir, err)
	}

	tmpDir, err := os.MkdirTemp(kindDir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	// no-op once the rename has succeeded
	defer os.RemoveAll(tmpDir)

	if err := writeFileSync(filepath.Join(tmpDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteFailure, filename, err)
	}
	if err := os.Rename(tmpDir, dir); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteFailure, dir, err)
	}
	return filepath.Join(dir, filename), nil
}

// writeFileSync writes data to path and fsyncs before closing.
func writeFileSync(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
