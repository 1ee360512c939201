// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/wit/pkg/errors"
)

var (
	// ErrNoRepository indicates that no control directory could be found for a path
	ErrNoRepository = errors.New("not a wit repository")

	// ErrAlreadyInitialized indicates an attempt to initialize a repository twice
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrInvalidReference indicates a target which is neither a branch nor an existing commit id
	ErrInvalidReference = errors.New("invalid commit id or branch")

	// ErrUncleanWorkingTree indicates that checkout is blocked by pending changes
	ErrUncleanWorkingTree = errors.New("unable to checkout: there are changes to be committed or not staged for commit")

	// ErrDivergedState indicates that merge is blocked because the staging area differs from HEAD
	ErrDivergedState = errors.New("unable to merge: staging area and HEAD are different")

	// ErrInvalidPath indicates a path which cannot be staged
	ErrInvalidPath = errors.New("invalid path")
)
