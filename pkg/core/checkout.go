package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/tree"
	"go.uber.org/zap"
)

// CheckoutResult describes the commit restored by a checkout
type CheckoutResult struct {
	ID string `json:"id" yaml:"id"`
	// Branch is empty when HEAD is left detached
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Checkout restores a branch or a commit into the working tree and the staging area.
//
// Checkout is refused while there are changes to be committed or changes not staged for commit:
// nothing is modified in that case. Files of the working tree absent from the target are kept.
func (r *Repository) Checkout(ctx context.Context, target string) (CheckoutResult, error) {
	table, err := r.refs.Load(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}

	id, branch, err := r.resolve(ctx, table, target)
	if err != nil {
		return CheckoutResult{}, err
	}

	report, err := r.Status(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !report.IsClean() {
		return CheckoutResult{}, fmt.Errorf("%w: %s", status.ErrUncleanWorkingTree, report.Summary())
	}

	snapshotRoot := r.snapshots.Path(id)
	if err = tree.Copy(r.fs, snapshotRoot, r.layout.Root); err != nil {
		return CheckoutResult{}, fmt.Errorf("restoring working tree: %w", err)
	}

	table.Set(model.HeadRef, id)
	if err = r.refs.Save(ctx, table); err != nil {
		return CheckoutResult{}, err
	}

	if err = r.staging.ResetTo(ctx, snapshotRoot); err != nil {
		return CheckoutResult{}, err
	}

	if err = r.refs.SetActiveBranch(ctx, branch); err != nil {
		return CheckoutResult{}, err
	}

	r.logger.Info("checkout done", zap.String("commit", id), zap.String("branch", branch))
	return CheckoutResult{ID: id, Branch: branch}, nil
}
