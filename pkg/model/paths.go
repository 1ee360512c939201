package model

import (
	"path/filepath"
	"strings"
)

const (
	// ControlDir is the name of the directory holding the state of a repository
	ControlDir = ".wit"

	// DefaultBranch is the branch active after init, and created by the first commit
	DefaultBranch = "master"

	// HeadRef is the reserved reference name for the commit the working tree reflects
	HeadRef = "HEAD"

	imagesDir      = "images"
	stagingDir     = "staging_area"
	referencesFile = "references.txt"
	activatedFile  = "activated.txt"
	metadataExt    = ".txt"
)

// Layout locates the state of a repository rooted at Root
type Layout struct {
	Root string
}

// NewLayout for a repository rooted at the given working directory
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// Control directory of the repository
func (l Layout) Control() string {
	return filepath.Join(l.Root, ControlDir)
}

// Images is the directory holding commit snapshots
func (l Layout) Images() string {
	return filepath.Join(l.Control(), imagesDir)
}

// Staging is the staging area directory
func (l Layout) Staging() string {
	return filepath.Join(l.Control(), stagingDir)
}

// Snapshot is the root of the file copy of a commit
func (l Layout) Snapshot(id string) string {
	return filepath.Join(l.Images(), id)
}

// References is the reference table file
func (l Layout) References() string {
	return filepath.Join(l.Control(), ReferencesKey())
}

// Activated is the active branch marker file
func (l Layout) Activated() string {
	return filepath.Join(l.Control(), ActivatedKey())
}

// Rel returns the path relative to the repository root, or false when
// the path lies outside of it.
func (l Layout) Rel(path string) (string, bool) {
	rel, err := filepath.Rel(l.Root, filepath.Clean(path))
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsControlPath tells if a path relative to the root lies in the control directory
func IsControlPath(rel string) bool {
	first := strings.SplitN(filepath.Clean(rel), string(filepath.Separator), 2)[0]
	return first == ControlDir
}

// Keys relative to the control directory, as used by the storage layer

// ReferencesKey locates the reference table
func ReferencesKey() string {
	return referencesFile
}

// ActivatedKey locates the active branch marker
func ActivatedKey() string {
	return activatedFile
}

// MetadataKey locates the metadata file of a commit
func MetadataKey(id string) string {
	return filepath.Join(imagesDir, id+metadataExt)
}

// ImagesKey is the directory holding snapshots
func ImagesKey() string {
	return imagesDir
}

// IsMetadataName tells if a file name in the images directory is a commit metadata file,
// and returns the corresponding commit id.
func IsMetadataName(name string) (string, bool) {
	if filepath.Ext(name) != metadataExt {
		return "", false
	}
	id := name[:len(name)-len(metadataExt)]
	return id, id != ""
}
