/*
Package wit provides a minimal version control system for a local directory.

The primary goal of wit is to keep full snapshots of a working tree, with
git like operations: add to a staging area, commit, branch, checkout and merge.

All the state of a repository lives under a .wit directory at the root of
the working tree. See the cmd/wit command for the CLI, and pkg/core for the
library entry point.
*/
package wit
