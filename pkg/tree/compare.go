// Copyright © 2018 One Concern

package tree

import (
	"bytes"
	"io"

	"github.com/spf13/afero"
)

const compareChunk = 32 * 1024

// SameContent tells if two files hold the same bytes.
//
// Sizes are checked first, then the content is compared chunk by chunk.
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	ia, err := fs.Stat(a)
	if err != nil {
		return false, err
	}
	ib, err := fs.Stat(b)
	if err != nil {
		return false, err
	}
	if ia.IsDir() || ib.IsDir() {
		return ia.IsDir() && ib.IsDir(), nil
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	fa, err := fs.Open(a)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = fa.Close()
	}()

	fb, err := fs.Open(b)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = fb.Close()
	}()

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, ea := io.ReadFull(fa, bufA)
		nb, eb := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := ea == io.EOF || ea == io.ErrUnexpectedEOF
		doneB := eb == io.EOF || eb == io.ErrUnexpectedEOF
		if ea != nil && !doneA {
			return false, ea
		}
		if eb != nil && !doneB {
			return false, eb
		}
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}
