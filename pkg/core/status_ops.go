package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/oneconcern/wit/pkg/diff"
)

// Status compares the working tree, the staging area and the HEAD commit
func (r *Repository) Status(ctx context.Context) (diff.Report, error) {
	src, err := r.sources(ctx)
	if err != nil {
		return diff.Report{}, err
	}
	return diff.Compute(r.fs, src)
}

func (r *Repository) sources(ctx context.Context) (diff.Sources, error) {
	src := diff.Sources{
		Working: r.layout.Root,
		Staging: r.staging.Root(),
	}

	state, err := r.HeadState(ctx)
	if err != nil {
		return src, err
	}
	if state.Commit != "" {
		src.Commit = r.snapshots.Path(state.Commit)
	}
	return src, nil
}

// FileDiff is the unified diff of a single file
type FileDiff struct {
	Path  string `json:"path" yaml:"path"`
	Patch string `json:"patch" yaml:"patch"`
}

// Diff renders the changes not staged for commit, or with staged set, the changes to be committed.
//
// When paths are given, only files at or below these paths, relative to the root, are reported.
func (r *Repository) Diff(ctx context.Context, staged bool, paths ...string) ([]FileDiff, error) {
	src, err := r.sources(ctx)
	if err != nil {
		return nil, err
	}
	report, err := diff.Compute(r.fs, src)
	if err != nil {
		return nil, err
	}

	candidates, from, to := report.NotStaged, src.Staging, src.Working
	if staged {
		candidates, from, to = report.ToBeCommitted, src.Commit, src.Staging
		if !report.HasCommit {
			contents, erc := r.staging.Contents(ctx)
			if erc != nil {
				return nil, erc
			}
			candidates = contents.FileNames()
		}
	}

	diffs := make([]FileDiff, 0, len(candidates))
	for _, rel := range candidates {
		if !selected(rel, paths) {
			continue
		}
		var left string
		if from != "" {
			left = filepath.Join(from, rel)
		}
		right := filepath.Join(to, rel)
		if r.isDir(left) || r.isDir(right) {
			continue
		}

		patch, err := diff.Unified(r.fs, left, right, "a/"+filepath.ToSlash(rel), "b/"+filepath.ToSlash(rel), diff.DefaultContext)
		if err != nil {
			return nil, err
		}
		if patch == "" {
			continue
		}
		diffs = append(diffs, FileDiff{Path: rel, Patch: patch})
	}
	return diffs, nil
}

func (r *Repository) isDir(pth string) bool {
	if pth == "" {
		return false
	}
	info, err := r.fs.Stat(pth)
	return err == nil && info.IsDir()
}

func selected(rel string, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		p = filepath.Clean(p)
		if p == "." || rel == p || strings.HasPrefix(rel, p+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
