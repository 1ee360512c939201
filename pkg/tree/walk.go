// Copyright © 2018 One Concern

package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Entry describes a file or a directory found by Walk
type Entry struct {
	Path    string      `json:"path" yaml:"path"`
	IsDir   bool        `json:"isDir,omitempty" yaml:"isDir,omitempty"`
	Size    int64       `json:"size" yaml:"size"`
	Mode    os.FileMode `json:"mode" yaml:"mode"`
	ModTime int64       `json:"mtime" yaml:"mtime"`
}

// PathSet is the recursive set of relative paths under some root
type PathSet struct {
	Dirs  map[string]Entry
	Files map[string]Entry
}

func newPathSet() PathSet {
	return PathSet{
		Dirs:  make(map[string]Entry),
		Files: make(map[string]Entry),
	}
}

// Has tells if the set holds this relative path, as a file or a directory
func (p PathSet) Has(rel string) bool {
	if _, ok := p.Files[rel]; ok {
		return true
	}
	_, ok := p.Dirs[rel]
	return ok
}

// HasFile tells if the set holds this relative path as a file
func (p PathSet) HasFile(rel string) bool {
	_, ok := p.Files[rel]
	return ok
}

// HasDir tells if the set holds this relative path as a directory
func (p PathSet) HasDir(rel string) bool {
	_, ok := p.Dirs[rel]
	return ok
}

// Len is the number of files and directories in the set
func (p PathSet) Len() int {
	return len(p.Files) + len(p.Dirs)
}

// Size sums up the size of all files in the set
func (p PathSet) Size() int64 {
	var total int64
	for _, e := range p.Files {
		total += e.Size
	}
	return total
}

// FileNames lists the files in the set, sorted
func (p PathSet) FileNames() []string {
	return sortedKeys(p.Files)
}

// DirNames lists the directories in the set, sorted
func (p PathSet) DirNames() []string {
	return sortedKeys(p.Dirs)
}

func sortedKeys(m map[string]Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk enumerates all files and directories under root, relative to root.
//
// The root itself is not part of the result. A missing root yields an error.
func Walk(fs afero.Fs, root string, opts ...Option) (PathSet, error) {
	o := defaultOptions(opts)
	set := newPathSet()

	info, err := fs.Stat(root)
	if err != nil {
		return set, err
	}
	if !info.IsDir() {
		return set, fmt.Errorf("walk %s: not a directory", root)
	}

	stack := []string{"."}
	for len(stack) > 0 {
		rel := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(fs, filepath.Join(root, rel))
		if err != nil {
			return set, fmt.Errorf("walk %s: %w", filepath.Join(root, rel), err)
		}

		for _, fi := range entries {
			child := filepath.Join(rel, fi.Name())
			if o.excluded(child) {
				continue
			}
			entry := Entry{
				Path:    child,
				IsDir:   fi.IsDir(),
				Mode:    fi.Mode(),
				ModTime: fi.ModTime().UnixNano(),
			}
			if fi.IsDir() {
				set.Dirs[child] = entry
				stack = append(stack, child)
				continue
			}
			entry.Size = fi.Size()
			set.Files[child] = entry
		}
	}
	return set, nil
}
