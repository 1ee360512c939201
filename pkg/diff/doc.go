// Copyright © 2018 One Concern

/*
Package diff classifies the paths of a repository by comparing three trees: the working tree,
the staging area and the snapshot of the HEAD commit.

A report holds three sorted lists of relative paths:

  - changes to be committed: paths new to the staging area, or staged files which bytes differ from HEAD
  - changes not staged for commit: staged files which working copy exists and differs
  - untracked files: working tree paths absent from the staging area

Files deleted from the working tree, and paths deleted from the staging area relative to HEAD,
are not reported.
*/
package diff
