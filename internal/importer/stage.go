package importer

import (
	"errors"

	"github.com/alevsk/oscal-ops/internal/loader"
	"github.com/alevsk/oscal-ops/internal/model"
	"github.com/alevsk/oscal-ops/internal/workspace"
)

// Stage names the pipeline step an import failed in
type Stage string

const (
	// StageRequest covers malformed requests rejected before the pipeline runs
	StageRequest Stage = "request"
	// StageWorkspace covers workspace discovery
	StageWorkspace Stage = "workspace"
	// StageSource covers source file checks before parsing
	StageSource Stage = "source"
	// StageParse covers deserialization
	StageParse Stage = "parse"
	// StageClassify covers root key classification
	StageClassify Stage = "classify"
	// StageValidate covers document validation and the collision check
	StageValidate Stage = "validate"
	// StageWrite covers persisting the document
	StageWrite Stage = "write"
	// StageUnknown is returned for errors the pipeline did not produce
	StageUnknown Stage = "unknown"
)

// FailureStage maps an error returned by Import to the pipeline stage that
// produced it.
func FailureStage(err error) Stage {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return StageRequest
	case errors.Is(err, workspace.ErrNotAWorkspace):
		return StageWorkspace
	case errors.Is(err, loader.ErrUnsupportedExtension),
		errors.Is(err, loader.ErrFileNotFound),
		errors.Is(err, ErrSelfImport):
		return StageSource
	case errors.Is(err, loader.ErrParseFailure):
		return StageParse
	case errors.Is(err, model.ErrUnknownRootKey),
		errors.Is(err, model.ErrAmbiguousRootKey):
		return StageClassify
	case errors.Is(err, model.ErrInvalidDocument),
		errors.Is(err, workspace.ErrArtifactExists):
		return StageValidate
	case errors.Is(err, workspace.ErrWriteFailure):
		return StageWrite
	default:
		return StageUnknown
	}
}
