package core

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oneconcern/wit/internal/rand"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/tree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testRoot = "/work/project"

var testTime = time.Date(2022, time.February, 3, 4, 5, 6, 0, time.UTC)

func testClock() time.Time {
	return testTime
}

func setupRepo(t testing.TB, opts ...Option) (*Repository, afero.Fs) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))

	opts = append([]Option{
		WithClock(testClock),
		WithIDGenerator(rand.New(model.IDAlphabet, model.IDLength, 1)),
	}, opts...)
	r, err := Init(context.Background(), fs, testRoot, opts...)
	require.NoError(t, err)
	return r, fs
}

func writeFile(t testing.TB, fs afero.Fs, rel, content string) {
	pth := filepath.Join(testRoot, rel)
	require.NoError(t, fs.MkdirAll(filepath.Dir(pth), 0o755))
	require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0o644))
}

func readFile(t testing.TB, fs afero.Fs, pth string) string {
	data, err := afero.ReadFile(fs, pth)
	require.NoError(t, err)
	return string(data)
}

func references(t testing.TB, fs afero.Fs) string {
	return readFile(t, fs, filepath.Join(testRoot, ".wit", "references.txt"))
}

func activated(t testing.TB, fs afero.Fs) string {
	return readFile(t, fs, filepath.Join(testRoot, ".wit", "activated.txt"))
}

func headOf(t testing.TB, r *Repository) model.HeadState {
	state, err := r.HeadState(context.Background())
	require.NoError(t, err)
	return state
}

func addAndCommit(t testing.TB, r *Repository, message string, paths ...string) CommitResult {
	ctx := context.Background()
	for _, p := range paths {
		require.NoError(t, r.Add(ctx, p))
	}
	res, err := r.Commit(ctx, message)
	require.NoError(t, err)
	return res
}

// requireStagingMatches asserts that the staging area holds exactly the snapshot of a commit
func requireStagingMatches(t testing.TB, r *Repository, fs afero.Fs, id string) {
	staged, err := tree.Walk(fs, r.layout.Staging())
	require.NoError(t, err)
	committed, err := tree.Walk(fs, r.layout.Snapshot(id))
	require.NoError(t, err)
	require.Equal(t, committed.FileNames(), staged.FileNames())
	require.Equal(t, committed.DirNames(), staged.DirNames())
	for _, rel := range committed.FileNames() {
		same, err := tree.SameContent(fs, filepath.Join(r.layout.Staging(), rel), filepath.Join(r.layout.Snapshot(id), rel))
		require.NoError(t, err)
		require.True(t, same, rel)
	}
}
