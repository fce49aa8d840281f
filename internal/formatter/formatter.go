// Package formatter renders workspace inventories for terminal and
// machine-readable output.
package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	yaml "gopkg.in/yaml.v3"

	"github.com/alevsk/oscal-ops/internal/workspace"
)

// Formatter defines the interface for formatting inventory entries
type Formatter interface {
	Format(entries []workspace.Entry) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats entries as JSON
	TypeJSON Type = "json"
	// TypeYAML formats entries as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats entries as a table
	TypeTable Type = "table"
	// TypeMarkdown formats entries as a markdown table
	TypeMarkdown Type = "markdown"
)

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Table implements table formatting
type Table struct{}

// Markdown implements markdown formatting
type Markdown struct{}

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeJSON, TypeYAML, TypeTable, TypeMarkdown:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown formatter type: %s", s)
	}
}

// NewFormatter creates a new formatter of the specified type
func NewFormatter(t Type) (Formatter, error) {
	switch t {
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{}, nil
	case TypeMarkdown:
		return &Markdown{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", t)
	}
}

// Format formats entries as JSON
func (j *JSON) Format(entries []workspace.Entry) (string, error) {
	bytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats entries as YAML
func (y *YAML) Format(entries []workspace.Entry) (string, error) {
	bytes, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}

// buildTable builds the inventory table for the given entries
func buildTable(entries []workspace.Entry) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(nil)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateColumns = true

	t.SetTitle("WORKSPACE MODELS")

	t.AppendHeader(table.Row{
		"KIND",
		"NAME",
		"ID",
		"TITLE",
		"VERSION",
		"FORMAT",
		"MODIFIED",
	})

	for _, e := range entries {
		modified := ""
		if !e.ModTime.IsZero() {
			modified = e.ModTime.UTC().Format(time.RFC3339)
		}
		t.AppendRow(table.Row{
			string(e.Kind),
			e.Name,
			e.ID,
			e.Title,
			e.Version,
			e.Format,
			modified,
		})
	}

	// Sort by kind and name for consistent output
	t.SortBy([]table.SortBy{
		{Name: "KIND", Mode: table.Asc},
		{Name: "NAME", Mode: table.Asc},
	})
	return t
}

// Format formats entries as a table using go-pretty/v6/table
func (t *Table) Format(entries []workspace.Entry) (string, error) {
	return buildTable(entries).Render() + "\n", nil
}

// Format formats entries as a markdown table
func (m *Markdown) Format(entries []workspace.Entry) (string, error) {
	return buildTable(entries).RenderMarkdown() + "\n", nil
}
