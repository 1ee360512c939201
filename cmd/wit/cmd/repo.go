package cmd

import (
	"os"
	"path/filepath"

	"github.com/oneconcern/wit/pkg/core"
	"github.com/spf13/afero"
)

var (
	// used to patch over the file system and the working directory during test

	appFs afero.Fs = afero.NewOsFs()
	getwd          = os.Getwd
)

// openRepo locates the repository enclosing the working directory
func openRepo() (*core.Repository, string, error) {
	cwd, err := getwd()
	if err != nil {
		return nil, "", err
	}
	root, err := core.Locate(appFs, cwd)
	if err != nil {
		return nil, "", err
	}
	repo, err := core.Open(appFs, root, core.WithLogger(logger))
	if err != nil {
		return nil, "", err
	}
	return repo, cwd, nil
}

// absPath resolves a command line path against the working directory
func absPath(cwd, pth string) string {
	if filepath.IsAbs(pth) {
		return filepath.Clean(pth)
	}
	return filepath.Join(cwd, pth)
}
