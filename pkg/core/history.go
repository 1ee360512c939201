package core

import (
	"context"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/snapshot"
)

// History iterates over the parent edges reachable from a branch, a commit or HEAD.
// An empty start means HEAD.
func (r *Repository) History(ctx context.Context, start string) (*snapshot.History, error) {
	if start == "" {
		start = model.HeadRef
	}

	table, err := r.refs.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, _, err := r.resolve(ctx, table, start)
	if err != nil {
		return nil, err
	}
	return r.snapshots.History(ctx, id), nil
}

// Log lists the commits reachable from start, in the order the history reaches them
func (r *Repository) Log(ctx context.Context, start string) ([]model.Commit, error) {
	h, err := r.History(ctx, start)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]struct{})
	visit := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for h.Next() {
		edge := h.Edge()
		visit(edge.Child)
		visit(edge.Parent)
	}
	if err = h.Err(); err != nil {
		return nil, err
	}

	commits := make([]model.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := r.snapshots.Read(ctx, id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}
