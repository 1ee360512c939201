// Copyright © 2018 One Concern

package refs

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/refs/status"
	"github.com/oneconcern/wit/pkg/storage"
	"github.com/oneconcern/wit/pkg/storage/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store persists the reference table and the active branch marker.
//
// Both files are replaced atomically on every write.
type Store struct {
	store  storage.Store
	logger *zap.Logger
}

// Option for the reference store
type Option func(*Store)

// WithLogger sets a logger for the reference store and its underlying storage
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New reference store, on a filesystem rooted at the control directory
func New(fs afero.Fs, opts ...Option) (*Store, error) {
	s := &Store{logger: zap.NewNop()}
	for _, apply := range opts {
		apply(s)
	}

	atomic, err := localfs.NewAtomic(fs)
	if err != nil {
		return nil, err
	}
	s.store = storage.Instrument(s.logger, atomic)
	return s, nil
}

// Exists tells if a reference table has been written
func (s *Store) Exists(ctx context.Context) (bool, error) {
	return s.store.Has(ctx, model.ReferencesKey())
}

// Load the reference table
func (s *Store) Load(ctx context.Context) (*Table, error) {
	has, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, status.ErrNotInitialized
	}

	data, err := storage.GetBytes(ctx, s.store, model.ReferencesKey())
	if err != nil {
		return nil, err
	}
	return ParseTable(data)
}

// Save the reference table, replacing the previous one
func (s *Store) Save(ctx context.Context, t *Table) error {
	if err := s.store.Put(ctx, model.ReferencesKey(), bytes.NewReader(t.Bytes()), storage.OverWrite); err != nil {
		return err
	}
	s.logger.Debug("references saved", zap.Strings("names", t.Names()), zap.String("head", t.Head()))
	return nil
}

// CreateBranch adds a new branch pointing at the current HEAD commit.
//
// When the name is already taken, the table is left unchanged.
func (s *Store) CreateBranch(ctx context.Context, name string) (string, error) {
	if err := ValidateBranchName(name); err != nil {
		return "", err
	}

	t, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if t.Has(name) {
		return "", fmt.Errorf("%w: %q", status.ErrBranchAlreadyExists, name)
	}

	head := t.Head()
	if head == "" {
		return "", fmt.Errorf("%w: no HEAD to branch from", status.ErrNotInitialized)
	}
	t.Set(name, head)

	if err = s.Save(ctx, t); err != nil {
		return "", err
	}
	s.logger.Debug("branch created", zap.String("branch", name), zap.String("commit", head))
	return head, nil
}

// ActiveBranch reads the active branch marker. An empty name means that HEAD is detached.
func (s *Store) ActiveBranch(ctx context.Context) (string, error) {
	has, err := s.store.Has(ctx, model.ActivatedKey())
	if err != nil {
		return "", err
	}
	if !has {
		return "", nil
	}

	data, err := storage.GetBytes(ctx, s.store, model.ActivatedKey())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActiveBranch writes the active branch marker. An empty name detaches HEAD.
func (s *Store) SetActiveBranch(ctx context.Context, name string) error {
	if err := s.store.Put(ctx, model.ActivatedKey(), strings.NewReader(name), storage.OverWrite); err != nil {
		return err
	}
	s.logger.Debug("active branch set", zap.String("branch", name))
	return nil
}
