// Package model defines the supported compliance document kinds and the
// root-key classification used to route imports into the workspace.
package model

import (
	"fmt"
	"sort"
)

// Kind identifies a supported compliance document type. Its string value is
// the document's root key.
type Kind string

const (
	// KindCatalog is a security control catalog
	KindCatalog Kind = "catalog"
	// KindProfile is a control baseline built from catalog imports
	KindProfile Kind = "profile"
	// KindTargetDefinition describes assessment targets
	KindTargetDefinition Kind = "target-definition"
	// KindComponentDefinition describes system components and their controls
	KindComponentDefinition Kind = "component-definition"
	// KindSystemSecurityPlan is a system security plan
	KindSystemSecurityPlan Kind = "system-security-plan"
	// KindAssessmentPlan is a security assessment plan
	KindAssessmentPlan Kind = "assessment-plan"
	// KindAssessmentResults holds security assessment results
	KindAssessmentResults Kind = "assessment-results"
	// KindPlanOfActionAndMilestones is a plan of action and milestones
	KindPlanOfActionAndMilestones Kind = "plan-of-action-and-milestones"
)

// Error types for the model package
var (
	ErrUnknownRootKey   = fmt.Errorf("no known root key present")
	ErrAmbiguousRootKey = fmt.Errorf("more than one known root key present")
	ErrInvalidDocument  = fmt.Errorf("invalid document")
	ErrUnknownKind      = fmt.Errorf("unknown model kind")
)

// RawDocument is a deserialized document before classification. Only the
// top-level key set matters at this stage.
type RawDocument map[string]interface{}

// kindDirs maps each kind to its canonical subdirectory under the
// workspace root.
var kindDirs = map[Kind]string{
	KindCatalog:                   "catalogs",
	KindProfile:                   "profiles",
	KindTargetDefinition:          "target-definitions",
	KindComponentDefinition:       "component-definitions",
	KindSystemSecurityPlan:        "system-security-plans",
	KindAssessmentPlan:            "assessment-plans",
	KindAssessmentResults:         "assessment-results",
	KindPlanOfActionAndMilestones: "plan-of-action-and-milestones",
}

// AllKinds returns every supported kind in canonical order.
func AllKinds() []Kind {
	return []Kind{
		KindCatalog,
		KindProfile,
		KindTargetDefinition,
		KindComponentDefinition,
		KindSystemSecurityPlan,
		KindAssessmentPlan,
		KindAssessmentResults,
		KindPlanOfActionAndMilestones,
	}
}

// String returns the kind's root key.
func (k Kind) String() string {
	return string(k)
}

// Dir returns the workspace subdirectory for this kind.
func (k Kind) Dir() string {
	return kindDirs[k]
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	_, ok := kindDirs[k]
	return ok
}

// ParseKind converts a root key or subdirectory name to a Kind.
func ParseKind(s string) (Kind, error) {
	if k := Kind(s); k.Valid() {
		return k, nil
	}
	for k, dir := range kindDirs {
		if dir == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, s)
}

// Classify inspects the top-level key set of a raw document and returns the
// single kind whose root key is present. Documents matching no known root
// key, or more than one, are rejected rather than guessed.
func Classify(raw RawDocument) (Kind, error) {
	var matches []Kind
	for _, k := range AllKinds() {
		if _, ok := raw[string(k)]; ok {
			matches = append(matches, k)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: top-level keys %v", ErrUnknownRootKey, keysOf(raw))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ErrAmbiguousRootKey, matches)
	}
}

// keysOf returns the sorted top-level keys of a raw document for diagnostics.
func keysOf(raw RawDocument) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
