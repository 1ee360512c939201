// Copyright © 2018 One Concern

package snapshot

import (
	"context"

	"github.com/oneconcern/wit/pkg/model"
)

// History iterates over the parent edges reachable from a commit.
//
// Edges are produced depth first, first parent first. Every commit is expanded once,
// so merge diamonds do not repeat edges. A commit without parents at the start of
// the walk yields a single edge with an empty parent.
//
// Iteration stops on the first commit which metadata cannot be read: Err then reports it.
type History struct {
	ctx     context.Context
	store   *Store
	start   string
	current model.Edge
	err     error

	started bool
	stack   []string
	pending []model.Edge
	visited map[string]struct{}
}

// History of a commit. Nothing is read until the first call to Next.
func (s *Store) History(ctx context.Context, start string) *History {
	h := &History{
		ctx:   ctx,
		store: s,
		start: start,
	}
	h.Reset()
	return h
}

// Reset rewinds the iterator to the start commit
func (h *History) Reset() {
	h.current = model.Edge{}
	h.err = nil
	h.started = false
	h.stack = h.stack[:0]
	h.pending = h.pending[:0]
	h.visited = make(map[string]struct{})
}

// Next advances to the next edge. It returns false when done or on error.
func (h *History) Next() bool {
	if !h.started {
		h.started = true
		h.stack = append(h.stack, h.start)
	}

	for len(h.pending) == 0 {
		if h.err != nil || len(h.stack) == 0 {
			return false
		}

		id := h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		if _, seen := h.visited[id]; seen {
			continue
		}
		h.visited[id] = struct{}{}

		parents, err := h.store.ReadParents(h.ctx, id)
		if err != nil {
			h.err = err
			return false
		}

		if len(parents) == 0 && id == h.start {
			h.pending = append(h.pending, model.Edge{Child: id})
			continue
		}

		for _, parent := range parents {
			h.pending = append(h.pending, model.Edge{Child: id, Parent: parent})
		}
		for i := len(parents) - 1; i >= 0; i-- {
			if _, seen := h.visited[parents[i]]; !seen {
				h.stack = append(h.stack, parents[i])
			}
		}
	}

	h.current = h.pending[0]
	h.pending = h.pending[1:]
	return true
}

// Edge returns the current edge
func (h *History) Edge() model.Edge {
	return h.current
}

// Err returns the error which stopped the iteration, if any
func (h *History) Err() error {
	return h.err
}

// Edges drains a history into a slice
func Edges(h *History) ([]model.Edge, error) {
	edges := make([]model.Edge, 0)
	for h.Next() {
		edges = append(edges, h.Edge())
	}
	return edges, h.Err()
}
