// Copyright © 2018 One Concern

/*
Package tree walks, copies and compares directory trees over an afero filesystem.

All traversals use an explicit work stack: deep trees never grow the goroutine stack,
and a failure is reported with the path being processed.

Paths returned by Walk are relative to the walked root and use the OS separator.
*/
package tree
