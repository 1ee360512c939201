// Copyright © 2018 One Concern

/*
Package snapshot stores immutable commit snapshots.

Each commit is a full copy of the staging area under images/<id>, and a
metadata file images/<id>.txt holding its parents, timestamp and message.

Metadata files are written once and never overwritten. History walks the
parent links of a commit lazily, expanding each commit once.
*/
package snapshot
