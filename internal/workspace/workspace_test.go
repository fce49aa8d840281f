package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alevsk/oscal-ops/internal/model"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()

	meta, err := Init(dir)
	require.NoError(t, err)
	require.NotNil(t, meta)

	_, err = uuid.Parse(meta.UUID)
	assert.NoError(t, err, "metadata UUID should parse")
	assert.False(t, meta.Created.IsZero())

	for _, kind := range model.AllKinds() {
		info, err := os.Stat(filepath.Join(dir, kind.Dir()))
		require.NoError(t, err, "missing %s", kind.Dir())
		assert.True(t, info.IsDir())
	}

	info, err := os.Stat(filepath.Join(dir, MarkerDir, MetaFile))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestInitAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()

	_, err := Init(dir)
	require.NoError(t, err)

	_, err = Init(dir)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "catalogs", "mycatalog")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	tests := []struct {
		name  string
		start string
	}{
		{name: "from the root itself", start: dir},
		{name: "from a nested directory", start: nested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Find(tt.start)
			require.NoError(t, err)
			assert.Equal(t, dir, root)
		})
	}
}

func TestFindNotAWorkspace(t *testing.T) {
	_, err := Find(t.TempDir())
	assert.ErrorIs(t, err, ErrNotAWorkspace)
}

func TestReadMeta(t *testing.T) {
	dir := t.TempDir()

	written, err := Init(dir)
	require.NoError(t, err)

	read, err := ReadMeta(dir)
	require.NoError(t, err)
	assert.Equal(t, written.UUID, read.UUID)
}

func TestReadMetaNotAWorkspace(t *testing.T) {
	_, err := ReadMeta(t.TempDir())
	assert.ErrorIs(t, err, ErrNotAWorkspace)
}

func TestContains(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "nested file",
			path: filepath.Join(root, "catalogs", "mycatalog", "catalog.json"),
			want: true,
		},
		{
			name: "the root itself",
			path: root,
			want: true,
		},
		{
			name: "sibling with the root as a name prefix",
			path: root + "x",
			want: false,
		},
		{
			name: "parent directory",
			path: filepath.Dir(root),
			want: false,
		},
		{
			name: "unrelated path",
			path: filepath.Join(filepath.Dir(root), "elsewhere", "catalog.json"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(root, tt.path))
		})
	}
}

func TestContainsRelativePath(t *testing.T) {
	root := t.TempDir()
	chdir(t,root)

	assert.True(t, Contains(root, filepath.Join("catalogs", "mycatalog")))
	assert.True(t, Contains(".", filepath.Join(root, "profiles")))
	assert.False(t, Contains(root, filepath.Join("..", "outside.json")))
}
