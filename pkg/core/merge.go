package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/diff"
	"go.uber.org/zap"
)

// MergeMessage is the message of the commit created by merging target
func MergeMessage(target string) string {
	return "Merge branch/commit id: " + target
}

// Merge a branch or a commit into HEAD.
//
// The staging area must hold exactly the content of HEAD. It is then replaced by the content
// of the target, and committed with two parents: HEAD and the target. The working tree is left untouched.
func (r *Repository) Merge(ctx context.Context, target string) (CommitResult, error) {
	table, err := r.refs.Load(ctx)
	if err != nil {
		return CommitResult{}, err
	}

	id, _, err := r.resolve(ctx, table, target)
	if err != nil {
		return CommitResult{}, err
	}

	same, err := diff.Equal(r.fs, r.snapshots.Path(table.Head()), r.staging.Root())
	if err != nil {
		return CommitResult{}, err
	}
	if !same {
		return CommitResult{}, fmt.Errorf("%w: cannot merge %q", status.ErrDivergedState, target)
	}

	if err = r.staging.ResetTo(ctx, r.snapshots.Path(id)); err != nil {
		return CommitResult{}, err
	}

	r.logger.Debug("merging", zap.String("target", target), zap.String("commit", id), zap.String("head", table.Head()))
	return r.commit(ctx, MergeMessage(target), id)
}
