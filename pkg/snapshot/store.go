// Copyright © 2018 One Concern

package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode"

	"github.com/oneconcern/wit/internal/rand"
	"github.com/oneconcern/wit/pkg/errors"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/snapshot/status"
	"github.com/oneconcern/wit/pkg/storage"
	"github.com/oneconcern/wit/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/wit/pkg/storage/status"
	"github.com/oneconcern/wit/pkg/tree"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	defaultMaxAttempts = 16
	dirPerm            = 0o755
)

// IDGenerator produces candidate commit ids
type IDGenerator interface {
	NewID() string
}

// DefaultIDGenerator draws 40 characters ids from the commit id alphabet, seeded from the clock
func DefaultIDGenerator() IDGenerator {
	return rand.NewTimeSeeded(model.IDAlphabet, model.IDLength)
}

// Store of commit snapshots
type Store struct {
	fs          afero.Fs
	layout      model.Layout
	meta        storage.Store
	ids         IDGenerator
	logger      *zap.Logger
	maxAttempts int
}

// New snapshot store for the repository with that layout
func New(fs afero.Fs, layout model.Layout, opts ...Option) *Store {
	s := &Store{
		fs:          fs,
		layout:      layout,
		logger:      zap.NewNop(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.ids == nil {
		s.ids = DefaultIDGenerator()
	}
	s.meta = storage.Instrument(s.logger, localfs.New(afero.NewBasePathFs(fs, layout.Control())))
	return s
}

// Create allocates a new commit with its metadata. The snapshot directory is left empty: see Fill.
func (s *Store) Create(ctx context.Context, parents []string, message string, ts time.Time) (string, error) {
	if err := s.fs.MkdirAll(s.layout.Images(), dirPerm); err != nil {
		return "", err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		id := s.ids.NewID()
		if err := ValidateID(id); err != nil {
			return "", err
		}

		taken, err := s.taken(ctx, id)
		if err != nil {
			return "", err
		}
		if taken {
			s.logger.Debug("commit id collision", zap.String("commit", id), zap.Int("attempt", attempt))
			continue
		}

		if err = s.fs.Mkdir(s.Path(id), dirPerm); err != nil {
			return "", fmt.Errorf("allocating snapshot %s: %w", id, err)
		}

		c := model.Commit{
			ID:        id,
			Parents:   parents,
			Timestamp: ts,
			Message:   message,
		}
		if err = s.meta.Put(ctx, model.MetadataKey(id), bytes.NewReader(model.FormatMetadata(c)), storage.NoOverWrite); err != nil {
			return "", fmt.Errorf("writing metadata for %s: %w", id, err)
		}

		s.logger.Debug("snapshot allocated", zap.String("commit", id), zap.Strings("parents", parents))
		return id, nil
	}

	return "", fmt.Errorf("%w: after %d attempts", status.ErrIDExhausted, s.maxAttempts)
}

func (s *Store) taken(ctx context.Context, id string) (bool, error) {
	has, err := s.meta.Has(ctx, model.MetadataKey(id))
	if err != nil || has {
		return has, err
	}
	return afero.Exists(s.fs, s.Path(id))
}

// Fill copies the content of src into the snapshot of a newly created commit
func (s *Store) Fill(ctx context.Context, id, src string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := tree.Copy(s.fs, src, s.Path(id)); err != nil {
		return fmt.Errorf("filling snapshot %s: %w", id, err)
	}
	s.logger.Debug("snapshot filled", zap.String("commit", id), zap.String("source", src))
	return nil
}

// Read the metadata of a commit
func (s *Store) Read(ctx context.Context, id string) (model.Commit, error) {
	if err := ValidateID(id); err != nil {
		return model.Commit{}, err
	}

	data, err := storage.GetBytes(ctx, s.meta, model.MetadataKey(id))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return model.Commit{}, status.ErrCommitNotFound.Wrap(err)
		}
		return model.Commit{}, err
	}
	return model.ParseMetadata(id, data)
}

// ReadParents of a commit, in order
func (s *Store) ReadParents(ctx context.Context, id string) ([]string, error) {
	c, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

// Exists tells if a commit has both its metadata and its snapshot directory
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	if ValidateID(id) != nil {
		return false, nil
	}
	has, err := s.meta.Has(ctx, model.MetadataKey(id))
	if err != nil || !has {
		return false, err
	}
	return afero.DirExists(s.fs, s.Path(id))
}

// Path is the root of the file copy of a commit
func (s *Store) Path(id string) string {
	return s.layout.Snapshot(id)
}

// Contents lists the files and directories of a commit snapshot
func (s *Store) Contents(ctx context.Context, id string) (tree.PathSet, error) {
	if err := ValidateID(id); err != nil {
		return tree.PathSet{}, err
	}
	return tree.Walk(s.fs, s.Path(id))
}

// List the ids of all commits, sorted
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.meta.Keys(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		// files of the snapshots sit one level deeper
		if filepath.Dir(key) != model.ImagesKey() {
			continue
		}
		if id, ok := model.IsMetadataName(filepath.Base(key)); ok && ValidateID(id) == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Len is the number of commits in the store
func (s *Store) Len(ctx context.Context) (int, error) {
	ids, err := s.List(ctx)
	return len(ids), err
}

// ValidateID checks that a string may be used as a commit id and as a file name
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", status.ErrInvalidID)
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return fmt.Errorf("%w: %q", status.ErrInvalidID, id)
		}
	}
	return nil
}
