// Copyright © 2018 One Concern

package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/tree"
	"github.com/spf13/afero"
)

// Sources locates the trees to compare. Commit is empty when nothing was committed yet.
type Sources struct {
	Working string
	Staging string
	Commit  string
}

// Report classifies the paths of a repository
type Report struct {
	// HasCommit is false when there is no HEAD commit to compare the staging area with
	HasCommit     bool     `json:"hasCommit" yaml:"hasCommit"`
	ToBeCommitted []string `json:"toBeCommitted" yaml:"toBeCommitted"`
	NotStaged     []string `json:"notStaged" yaml:"notStaged"`
	Untracked     []string `json:"untracked" yaml:"untracked"`
}

// IsClean tells if there is nothing to commit and nothing left to stage
func (r Report) IsClean() bool {
	return len(r.ToBeCommitted) == 0 && len(r.NotStaged) == 0
}

// Summary describes the pending changes which make a report unclean
func (r Report) Summary() string {
	var parts []string
	if len(r.ToBeCommitted) > 0 {
		parts = append(parts, "to be committed: "+strings.Join(r.ToBeCommitted, ", "))
	}
	if len(r.NotStaged) > 0 {
		parts = append(parts, "not staged: "+strings.Join(r.NotStaged, ", "))
	}
	return strings.Join(parts, "; ")
}

// Compute the status report for these sources
func Compute(fs afero.Fs, src Sources) (Report, error) {
	var report Report

	staged, err := tree.Walk(fs, src.Staging)
	if err != nil {
		return report, fmt.Errorf("reading staging area: %w", err)
	}

	if src.Commit != "" {
		report.HasCommit = true
		committed, erw := tree.Walk(fs, src.Commit)
		if erw != nil {
			return report, fmt.Errorf("reading commit snapshot: %w", erw)
		}
		report.ToBeCommitted, err = toBeCommitted(fs, src, staged, committed)
		if err != nil {
			return report, err
		}
	}

	report.NotStaged, err = notStaged(fs, src, staged)
	if err != nil {
		return report, err
	}

	working, err := tree.Walk(fs, src.Working, tree.Exclude(model.ControlDir))
	if err != nil {
		return report, fmt.Errorf("reading working tree: %w", err)
	}
	report.Untracked = untracked(staged, working)

	return report, nil
}

func toBeCommitted(fs afero.Fs, src Sources, staged, committed tree.PathSet) ([]string, error) {
	changes := make([]string, 0, staged.Len())
	for rel := range staged.Files {
		if !committed.HasFile(rel) {
			changes = append(changes, rel)
			continue
		}
		same, err := tree.SameContent(fs, filepath.Join(src.Staging, rel), filepath.Join(src.Commit, rel))
		if err != nil {
			return nil, err
		}
		if !same {
			changes = append(changes, rel)
		}
	}
	for rel := range staged.Dirs {
		if !committed.HasDir(rel) {
			changes = append(changes, rel)
		}
	}
	sort.Strings(changes)
	return changes, nil
}

func notStaged(fs afero.Fs, src Sources, staged tree.PathSet) ([]string, error) {
	changes := make([]string, 0, len(staged.Files))
	for rel := range staged.Files {
		working := filepath.Join(src.Working, rel)
		info, err := fs.Stat(working)
		if err != nil {
			if os.IsNotExist(err) {
				// deleted from the working tree: not reported
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			changes = append(changes, rel)
			continue
		}
		same, err := tree.SameContent(fs, working, filepath.Join(src.Staging, rel))
		if err != nil {
			return nil, err
		}
		if !same {
			changes = append(changes, rel)
		}
	}
	sort.Strings(changes)
	return changes, nil
}

func untracked(staged, working tree.PathSet) []string {
	paths := make([]string, 0, working.Len())
	for rel := range working.Files {
		if !staged.HasFile(rel) {
			paths = append(paths, rel)
		}
	}
	for rel := range working.Dirs {
		if !staged.HasDir(rel) {
			paths = append(paths, rel)
		}
	}
	sort.Strings(paths)
	return paths
}

// Equal tells if two trees hold the same files and directories, with the same bytes
func Equal(fs afero.Fs, a, b string) (bool, error) {
	left, err := tree.Walk(fs, a)
	if err != nil {
		return false, err
	}
	right, err := tree.Walk(fs, b)
	if err != nil {
		return false, err
	}

	if len(left.Files) != len(right.Files) || len(left.Dirs) != len(right.Dirs) {
		return false, nil
	}
	for rel := range left.Dirs {
		if !right.HasDir(rel) {
			return false, nil
		}
	}
	for rel := range left.Files {
		if !right.HasFile(rel) {
			return false, nil
		}
	}
	for _, rel := range left.FileNames() {
		same, err := tree.SameContent(fs, filepath.Join(a, rel), filepath.Join(b, rel))
		if err != nil {
			return false, err
		}
		if !same {
			return false, nil
		}
	}
	return true, nil
}
