// Copyright © 2018 One Concern

package storage

import (
	"bytes"
	"context"
	"io"
)

// NewKey tells Put whether an existing key may be replaced
type NewKey bool

const (
	// OverWrite replaces any existing object at that key
	OverWrite NewKey = false

	// NoOverWrite fails with status.ErrExists when the key is already present
	NoOverWrite NewKey = true
)

// Store implementations know how to write entries to a K/V store.
//
// Typically this is something file system-like.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, NewKey) error
	Keys(context.Context) ([]string, error)
}

// GetBytes reads a whole object in memory
func GetBytes(ctx context.Context, store Store, key string) ([]byte, error) {
	rdr, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	var buf bytes.Buffer
	if _, err = PipeIO(&buf, rdr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PipeIO copies a reader into a writer, with a fixed size buffer
func PipeIO(writer io.Writer, reader io.Reader) (int64, error) {
	const bufSize = 32 * 1024
	return io.CopyBuffer(writer, reader, make([]byte, bufSize))
}
