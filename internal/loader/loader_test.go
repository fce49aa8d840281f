package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr error
	}{
		{
			name: "json extension",
			path: "catalogs/mycatalog/catalog.json",
			want: FormatJSON,
		},
		{
			name: "yaml extension",
			path: "profile.yaml",
			want: FormatYAML,
		},
		{
			name: "yml extension",
			path: "profile.yml",
			want: FormatYAML,
		},
		{
			name: "uppercase extension",
			path: "CATALOG.JSON",
			want: FormatJSON,
		},
		{
			name: "mixed case extension",
			path: "catalog.Yaml",
			want: FormatYAML,
		},
		{
			name:    "txt extension",
			path:    "sample.txt",
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "no extension",
			path:    "catalog",
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "trailing dot",
			path:    "catalog.",
			wantErr: ErrUnsupportedExtension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, FormatUnknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		rootKey string
		wantErr error
	}{
		{
			name:    "json catalog",
			path:    "testdata/minimal_catalog.json",
			rootKey: "catalog",
		},
		{
			name:    "yaml catalog",
			path:    "testdata/minimal_catalog.yaml",
			rootKey: "catalog",
		},
		{
			name:    "yml catalog",
			path:    "testdata/minimal_catalog.yml",
			rootKey: "catalog",
		},
		{
			name:    "flat document loads even without known root",
			path:    "testdata/bad_simple.json",
			rootKey: "id",
		},
		{
			name:    "malformed json",
			path:    "testdata/malformed.json",
			wantErr: ErrParseFailure,
		},
		{
			name:    "malformed yaml",
			path:    "testdata/malformed.yaml",
			wantErr: ErrParseFailure,
		},
		{
			name:    "array at document root",
			path:    "testdata/array_root.json",
			wantErr: ErrParseFailure,
		},
		{
			name:    "unsupported extension",
			path:    "testdata/sample.txt",
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "missing file",
			path:    "testdata/no_such_file.json",
			wantErr: ErrFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Load(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, raw, tt.rootKey)
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadEmptyFile(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "empty json", file: "empty.json"},
		{name: "empty yaml", file: "empty.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrParseFailure)
		})
	}
}

func TestMarshal(t *testing.T) {
	doc := map[string]interface{}{
		"catalog": map[string]interface{}{
			"id": "613fca2d-704a-42e7-8e2b-b206fb92b456",
		},
	}

	t.Run("json is indented", func(t *testing.T) {
		data, err := Marshal(FormatJSON, doc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "{\n  \"catalog\""))
		assert.True(t, strings.HasSuffix(string(data), "\n"))
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := Marshal(FormatYAML, doc)
		require.NoError(t, err)
		assert.Contains(t, string(data), "catalog:")
		assert.True(t, strings.HasSuffix(string(data), "\n"))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Marshal(FormatUnknown, doc)
		assert.Error(t, err)
	})
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
