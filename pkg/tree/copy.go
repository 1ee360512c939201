// Copyright © 2018 One Concern

package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

const dirPerm = 0o755

// CopyFile copies a single file, creating missing parent directories.
//
// An existing destination file is overwritten. Mode and modification time are preserved.
func CopyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}

	if err = fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}

	// a directory in the way of the destination file is replaced
	if existing, erd := fs.Stat(dst); erd == nil && existing.IsDir() {
		if err = fs.RemoveAll(dst); err != nil {
			return err
		}
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		return multierr.Append(err, out.Close())
	}
	if err = out.Close(); err != nil {
		return err
	}

	if err = fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Copy merges the content of src into dst.
//
// Files are overwritten, directories are created as needed and nothing is removed from dst.
func Copy(fs afero.Fs, src, dst string, opts ...Option) error {
	set, err := Walk(fs, src, opts...)
	if err != nil {
		return err
	}

	if err = fs.MkdirAll(dst, dirPerm); err != nil {
		return err
	}

	// parents sort before their children
	for _, rel := range set.DirNames() {
		target := filepath.Join(dst, rel)
		if existing, erd := fs.Stat(target); erd == nil && !existing.IsDir() {
			if err = fs.Remove(target); err != nil {
				return fmt.Errorf("copy %s: %w", rel, err)
			}
		}
		if err = fs.MkdirAll(target, set.Dirs[rel].Mode.Perm()|0o700); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
	}

	for _, rel := range set.FileNames() {
		if err = CopyFile(fs, filepath.Join(src, rel), filepath.Join(dst, rel)); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
	}
	return nil
}

// Replace removes dst then copies src into it: afterwards, dst mirrors src exactly.
func Replace(fs afero.Fs, src, dst string, opts ...Option) error {
	if err := fs.RemoveAll(dst); err != nil {
		return err
	}
	return Copy(fs, src, dst, opts...)
}
