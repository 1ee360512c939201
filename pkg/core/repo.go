/*
 * Copyright © 2018 One Concern
 *
 */

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/refs"
	"github.com/oneconcern/wit/pkg/snapshot"
	"github.com/oneconcern/wit/pkg/stage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const dirPerm = 0o755

// Repository is a handle on a working tree and its control directory.
//
// It is resolved once, then passed to every operation.
type Repository struct {
	fs     afero.Fs
	layout model.Layout
	logger *zap.Logger
	clock  func() time.Time

	refs      *refs.Store
	snapshots *snapshot.Store
	staging   *stage.Area
}

// Init creates the control directory of a new repository rooted at root.
//
// The active branch is set to master. No reference is written until the first commit.
func Init(ctx context.Context, fs afero.Fs, root string, opts ...Option) (*Repository, error) {
	layout := model.NewLayout(root)
	exists, err := afero.Exists(fs, layout.Control())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", status.ErrAlreadyInitialized, layout.Control())
	}

	for _, dir := range []string{layout.Control(), layout.Images(), layout.Staging()} {
		if err = fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, err
		}
	}

	r, err := Open(fs, root, opts...)
	if err != nil {
		return nil, err
	}
	if err = r.refs.SetActiveBranch(ctx, model.DefaultBranch); err != nil {
		return nil, err
	}

	r.logger.Info("repository initialized", zap.String("root", layout.Root))
	return r, nil
}

// Locate searches for the root of a repository, from start up to the root of the file system
func Locate(fs afero.Fs, start string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if isDir, _ := afero.IsDir(fs, current); !isDir {
		current = filepath.Dir(current)
	}

	for {
		found, err := afero.DirExists(fs, filepath.Join(current, model.ControlDir))
		if err != nil {
			return "", err
		}
		if found {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: no %s directory found from %s", status.ErrNoRepository, model.ControlDir, start)
		}
		current = parent
	}
}

// Open a handle on the repository rooted at root
func Open(fs afero.Fs, root string, opts ...Option) (*Repository, error) {
	settings := defaultSettings(opts)
	layout := model.NewLayout(root)

	found, err := afero.DirExists(fs, layout.Control())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", status.ErrNoRepository, root)
	}

	logger := settings.logger.With(zap.String("repo", layout.Root))
	references, err := refs.New(afero.NewBasePathFs(fs, layout.Control()), refs.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Repository{
		fs:     fs,
		layout: layout,
		logger: logger,
		clock:  settings.clock,
		refs:   references,
		snapshots: snapshot.New(fs, layout,
			snapshot.WithIDGenerator(settings.ids),
			snapshot.WithLogger(logger),
		),
		staging: stage.New(fs, layout, logger),
	}, nil
}

// Root of the working tree
func (r *Repository) Root() string {
	return r.layout.Root
}

// Layout of the repository
func (r *Repository) Layout() model.Layout {
	return r.layout
}

// Add a file or a directory of the working tree to the staging area.
// Relative paths are taken from the root of the working tree.
func (r *Repository) Add(ctx context.Context, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.layout.Root, path)
	}
	return r.staging.Add(ctx, path)
}
