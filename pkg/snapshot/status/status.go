// Package status exports errors produced by the snapshot package.
package status

import (
	"github.com/oneconcern/wit/pkg/errors"
)

var (
	// ErrCommitNotFound indicates a commit id without metadata in the snapshot store
	ErrCommitNotFound = errors.New("commit not found")

	// ErrInvalidID indicates a string which cannot be a commit id
	ErrInvalidID = errors.New("invalid commit id")

	// ErrIDExhausted indicates that no fresh commit id could be generated
	ErrIDExhausted = errors.New("could not generate a fresh commit id")
)
