// Package status exports errors produced by the refs package.
package status

import (
	"github.com/oneconcern/wit/pkg/errors"
)

var (
	// ErrNotInitialized indicates that no reference table has been written yet, i.e. nothing was committed
	ErrNotInitialized = errors.New("no references yet")

	// ErrBranchAlreadyExists indicates an attempt to create a branch over an existing reference
	ErrBranchAlreadyExists = errors.New("branch already exists")

	// ErrInvalidBranchName indicates a branch name which cannot be stored in the reference table
	ErrInvalidBranchName = errors.New("invalid branch name")

	// ErrMalformedTable indicates a reference table file which cannot be parsed
	ErrMalformedTable = errors.New("malformed reference table")
)
