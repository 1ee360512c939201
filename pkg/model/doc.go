// Package model describes the base objects manipulated by wit.
//
// The package exposes a model for metadata.
//
// The object model for wit is composed of:
//
//  Commits:
//    A commit is an immutable, full copy of the staging area at some point in time,
//    with its parents, a timestamp and a message. Commits are identified by a random
//    40-character id.
//
//  References:
//    Named pointers to commits: HEAD (what the working tree reflects) and branches.
//
//  Head state:
//    How HEAD relates to the active branch (unborn, detached, at the branch tip, or behind it).
//
//  Layout:
//    Where each piece of state lives under the control directory of a repository.
package model
