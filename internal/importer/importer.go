// Package importer pulls external compliance documents into a workspace. It
// runs a fixed pipeline over the source file: locate the workspace, validate
// the source, parse it, classify it by root key, validate the resulting
// document, and store it under the matching kind directory.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alevsk/oscal-ops/internal/loader"
	"github.com/alevsk/oscal-ops/internal/logger"
	"github.com/alevsk/oscal-ops/internal/model"
	"github.com/alevsk/oscal-ops/internal/workspace"
)

// Error types for import operations
var (
	ErrInvalidRequest = fmt.Errorf("invalid import request")
	ErrSelfImport     = fmt.Errorf("cannot import a document from inside the workspace")
)

// Request describes one import operation
type Request struct {
	// SourcePath is the document file to import
	SourcePath string
	// OutputName is the artifact name the document is stored under
	OutputName string
	// WorkDir is the directory the workspace is located from. Empty means
	// the current directory.
	WorkDir string
}

// Result reports a completed import
type Result struct {
	Kind      model.Kind `json:"kind" yaml:"kind"`
	Name      string     `json:"name" yaml:"name"`
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Format    string     `json:"format" yaml:"format"`
	Path      string     `json:"path" yaml:"path"`
	Root      string     `json:"root" yaml:"root"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
}

// Import runs the full pipeline for req and stores the document on success.
// A failed import leaves the workspace unchanged.
func Import(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	workDir := req.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		workDir = wd
	}

	root, err := workspace.Find(workDir)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", root).Msg("workspace located")

	format, err := loader.FormatForPath(req.SourcePath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", loader.ErrFileNotFound, req.SourcePath)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", loader.ErrFileNotFound, req.SourcePath)
	}
	if workspace.Contains(root, req.SourcePath) {
		return nil, fmt.Errorf("%w: %s is inside %s", ErrSelfImport, req.SourcePath, root)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := loader.Load(req.SourcePath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("source", req.SourcePath).Str("format", format.String()).Msg("document parsed")

	kind, err := model.Classify(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("kind", string(kind)).Msg("document classified")

	doc, err := model.NewDocument(kind, raw)
	if err != nil {
		return nil, err
	}
	if workspace.HasArtifact(root, kind, req.OutputName) {
		return nil, fmt.Errorf("%w: %s/%s", workspace.ErrArtifactExists, kind.Dir(), req.OutputName)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := loader.Marshal(format, doc.Model())
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s: %v", workspace.ErrWriteFailure, req.OutputName, err)
	}
	filename := string(kind) + strings.ToLower(filepath.Ext(req.SourcePath))
	path, err := workspace.WriteArtifact(root, kind, req.OutputName, filename, data)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	result := &Result{
		Kind:      kind,
		Name:      req.OutputName,
		ID:        doc.ID,
		Title:     doc.Title,
		Format:    format.String(),
		Path:      rel,
		Root:      root,
		Timestamp: time.Now().UTC(),
	}
	logger.Info().
		Str("kind", string(kind)).
		Str("name", req.OutputName).
		Str("path", rel).
		Msg("import complete")
	return result, nil
}

// validateRequest rejects requests the pipeline cannot act on. The output
// name becomes a directory name, so it must be a single clean path segment.
func validateRequest(req Request) error {
	if req.SourcePath == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidRequest)
	}
	if req.OutputName == "" {
		return fmt.Errorf("%w: output name is required", ErrInvalidRequest)
	}
	if req.OutputName == "." || req.OutputName == ".." || strings.ContainsAny(req.OutputName, `/\`) {
		return fmt.Errorf("%w: output name %q must be a single path segment", ErrInvalidRequest, req.OutputName)
	}
	return nil
}
