// Copyright © 2018 One Concern

// Package stage manages the staging area of a repository: the candidate content of the next commit.
package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/tree"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Area is the staging area of a repository
type Area struct {
	fs     afero.Fs
	layout model.Layout
	logger *zap.Logger
}

// New staging area for the repository with that layout
func New(fs afero.Fs, layout model.Layout, logger *zap.Logger) *Area {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Area{
		fs:     fs,
		layout: layout,
		logger: logger,
	}
}

// Root of the staging area
func (a *Area) Root() string {
	return a.layout.Staging()
}

// Add copies a file or a directory of the working tree into the staging area.
//
// A file is copied at the same relative position. A directory replaces any prior copy of its subtree.
// Adding the repository root replaces the whole staging area with the working tree.
func (a *Area) Add(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, ok := a.layout.Rel(abs)
	if !ok {
		return fmt.Errorf("%w: %s is outside %s", status.ErrNoRepository, path, a.layout.Root)
	}
	if model.IsControlPath(rel) {
		return fmt.Errorf("%w: %s is inside the control directory", status.ErrInvalidPath, path)
	}

	info, err := a.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", status.ErrInvalidPath, path)
		}
		return err
	}

	if err = a.fs.MkdirAll(a.Root(), 0o755); err != nil {
		return err
	}

	target := filepath.Join(a.Root(), rel)
	switch {
	case rel == ".":
		err = tree.Replace(a.fs, a.layout.Root, a.Root(), tree.Exclude(model.ControlDir))
	case info.IsDir():
		err = tree.Replace(a.fs, abs, target)
	default:
		err = tree.CopyFile(a.fs, abs, target)
	}
	if err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}

	a.logger.Debug("added to staging area", zap.String("path", rel), zap.Bool("dir", info.IsDir()))
	return nil
}

// ResetTo replaces the whole staging area with a copy of src
func (a *Area) ResetTo(ctx context.Context, src string) error {
	if err := tree.Replace(a.fs, src, a.Root()); err != nil {
		return fmt.Errorf("resetting staging area: %w", err)
	}
	a.logger.Debug("staging area reset", zap.String("source", src))
	return nil
}

// Contents lists the files and directories in the staging area
func (a *Area) Contents(ctx context.Context) (tree.PathSet, error) {
	return tree.Walk(a.fs, a.Root())
}
