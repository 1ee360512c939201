// Copyright © 2018 One Concern

package tree

import "path/filepath"

type options struct {
	exclude map[string]struct{}
}

// Option for tree operations
type Option func(*options)

// Exclude skips an entry, given by its path relative to the root, and everything below it
func Exclude(rel string) Option {
	return func(o *options) {
		if o.exclude == nil {
			o.exclude = make(map[string]struct{})
		}
		o.exclude[filepath.Clean(rel)] = struct{}{}
	}
}

func defaultOptions(opts []Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o options) excluded(rel string) bool {
	if len(o.exclude) == 0 {
		return false
	}
	_, ok := o.exclude[rel]
	return ok
}
