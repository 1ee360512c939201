// Copyright © 2018 One Concern

// Package storage provides interface to handle keyed objects
// persisted under the repository control directory.
//
// This package supports the following backends:
//   - local file system, through any afero.Fs (plain or atomic writes)
package storage
