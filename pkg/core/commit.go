package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/refs"
	refstatus "github.com/oneconcern/wit/pkg/refs/status"
	"go.uber.org/zap"
)

// CommitResult describes a new commit
type CommitResult struct {
	ID      string   `json:"id" yaml:"id"`
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	// Branch is the branch advanced by the commit, if any
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Files  int    `json:"files" yaml:"files"`
	Size   int64  `json:"size" yaml:"size"`
}

// Commit the content of the staging area.
//
// HEAD always moves to the new commit. The active branch follows only when it pointed at HEAD.
func (r *Repository) Commit(ctx context.Context, message string) (CommitResult, error) {
	return r.commit(ctx, message, "")
}

func (r *Repository) commit(ctx context.Context, message, mergeParent string) (CommitResult, error) {
	var result CommitResult

	state, err := r.HeadState(ctx)
	if err != nil {
		return result, err
	}

	parents, err := r.parents(ctx, state, mergeParent)
	if err != nil {
		return result, err
	}

	id, err := r.snapshots.Create(ctx, parents, message, r.clock())
	if err != nil {
		return result, err
	}
	if err = r.snapshots.Fill(ctx, id, r.staging.Root()); err != nil {
		return result, err
	}

	table := refs.NewTable()
	if state.Kind != model.Unborn {
		if table, err = r.refs.Load(ctx); err != nil {
			return result, err
		}
	}

	switch state.Kind {
	case model.Unborn:
		table.Set(model.HeadRef, id)
		table.Set(model.DefaultBranch, id)
		result.Branch = model.DefaultBranch
	case model.OnBranchTip:
		table.Set(model.HeadRef, id)
		table.Set(state.Branch, id)
		result.Branch = state.Branch
	case model.Detached, model.OnBranchBehind:
		table.Set(model.HeadRef, id)
	default:
		return result, fmt.Errorf("unexpected head state: %v", state.Kind)
	}

	if err = r.refs.Save(ctx, table); err != nil {
		return result, err
	}

	contents, err := r.snapshots.Contents(ctx, id)
	if err != nil {
		return result, err
	}

	result.ID = id
	result.Parents = parents
	result.Files = len(contents.Files)
	result.Size = contents.Size()

	r.logger.Info("commit created",
		zap.String("commit", id),
		zap.Strings("parents", parents),
		zap.Stringer("head", state.Kind),
		zap.String("branch", result.Branch),
	)
	return result, nil
}

// parents of the next commit: none for the very first commit, HEAD otherwise, followed by the merged commit
func (r *Repository) parents(ctx context.Context, state model.HeadState, mergeParent string) ([]string, error) {
	count, err := r.snapshots.Len(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if state.Kind == model.Unborn {
		return nil, fmt.Errorf("%w: %d commits but no references", refstatus.ErrNotInitialized, count)
	}

	parents := []string{state.Commit}
	if mergeParent != "" {
		parents = append(parents, mergeParent)
	}
	return parents, nil
}
