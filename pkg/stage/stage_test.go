package stage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupArea(t testing.TB, files map[string]string) (*Area, afero.Fs) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo/.wit/staging_area", 0o755))
	require.NoError(t, fs.MkdirAll("/repo/.wit/images", 0o755))
	for name, content := range files {
		pth := filepath.Join("/repo", name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(pth), 0o755))
		require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0o644))
	}
	return New(fs, model.NewLayout("/repo"), nil), fs
}

func readStaged(t testing.TB, fs afero.Fs, rel string) string {
	data, err := afero.ReadFile(fs, filepath.Join("/repo/.wit/staging_area", rel))
	require.NoError(t, err)
	return string(data)
}

func TestAddFile(t *testing.T) {
	a, fs := setupArea(t, map[string]string{"a.txt": "hello", "dir/b.txt": "bye"})
	ctx := context.Background()

	require.NoError(t, a.Add(ctx, "/repo/dir/b.txt"))
	assert.Equal(t, "bye", readStaged(t, fs, "dir/b.txt"))

	contents, err := a.Contents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("dir", "b.txt")}, contents.FileNames())

	// re-adding picks the new content
	require.NoError(t, afero.WriteFile(fs, "/repo/dir/b.txt", []byte("bye bye"), 0o644))
	require.NoError(t, a.Add(ctx, "/repo/dir/b.txt"))
	assert.Equal(t, "bye bye", readStaged(t, fs, "dir/b.txt"))
}

func TestAddDirectoryReplacesSubtree(t *testing.T) {
	a, fs := setupArea(t, map[string]string{"dir/b.txt": "b", "dir/c.txt": "c", "a.txt": "a"})
	ctx := context.Background()

	require.NoError(t, a.Add(ctx, "/repo/a.txt"))
	require.NoError(t, a.Add(ctx, "/repo/dir"))
	require.NoError(t, fs.Remove("/repo/dir/c.txt"))
	require.NoError(t, a.Add(ctx, "/repo/dir"))

	contents, err := a.Contents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", filepath.Join("dir", "b.txt")}, contents.FileNames())
}

func TestAddRoot(t *testing.T) {
	a, fs := setupArea(t, map[string]string{"a.txt": "a", "dir/b.txt": "b"})
	ctx := context.Background()
	require.NoError(t, afero.WriteFile(fs, "/repo/.wit/staging_area/stale.txt", []byte("stale"), 0o644))

	require.NoError(t, a.Add(ctx, "/repo"))

	contents, err := a.Contents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", filepath.Join("dir", "b.txt")}, contents.FileNames())
	assert.Equal(t, []string{"dir"}, contents.DirNames())
}

func TestAddErrors(t *testing.T) {
	a, _ := setupArea(t, map[string]string{"a.txt": "a"})
	ctx := context.Background()

	err := a.Add(ctx, "/elsewhere/a.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNoRepository)

	err = a.Add(ctx, "/repo/.wit/images")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrInvalidPath)

	err = a.Add(ctx, "/repo/missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrInvalidPath)
}

func TestResetTo(t *testing.T) {
	a, fs := setupArea(t, map[string]string{
		".wit/images/abc/x.txt": "x",
		".wit/images/abc/d/y":   "y",
		"a.txt":                 "a",
	})
	ctx := context.Background()
	require.NoError(t, a.Add(ctx, "/repo/a.txt"))

	require.NoError(t, a.ResetTo(ctx, "/repo/.wit/images/abc"))

	contents, err := a.Contents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("d", "y"), "x.txt"}, contents.FileNames())
	assert.Equal(t, "x", readStaged(t, fs, "x.txt"))
	assert.Equal(t, "/repo/.wit/staging_area", a.Root())
}
