// Copyright © 2018 One Concern

package diff

import (
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// DefaultContext is the number of context lines around changes in unified diffs
const DefaultContext = 3

// Unified renders the differences between two files as a unified diff.
//
// A missing file, or an empty path, is treated as empty. Identical files yield an empty string.
func Unified(fs afero.Fs, from, to, fromLabel, toLabel string, context int) (string, error) {
	a, err := readOrEmpty(fs, from)
	if err != nil {
		return "", err
	}
	b, err := readOrEmpty(fs, to)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  context,
	})
}

func readOrEmpty(fs afero.Fs, pth string) (string, error) {
	if pth == "" {
		return "", nil
	}
	data, err := afero.ReadFile(fs, pth)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}
