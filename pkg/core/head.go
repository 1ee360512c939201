package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/wit/pkg/core/status"
	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/refs"
	"go.uber.org/zap"
)

// HeadState tells where HEAD stands relative to the active branch
func (r *Repository) HeadState(ctx context.Context) (model.HeadState, error) {
	active, err := r.refs.ActiveBranch(ctx)
	if err != nil {
		return model.HeadState{}, err
	}

	initialized, err := r.refs.Exists(ctx)
	if err != nil {
		return model.HeadState{}, err
	}
	if !initialized {
		if active == "" {
			active = model.DefaultBranch
		}
		return model.UnbornHead(active), nil
	}

	table, err := r.refs.Load(ctx)
	if err != nil {
		return model.HeadState{}, err
	}
	return r.headState(table, active), nil
}

func (r *Repository) headState(table *refs.Table, active string) model.HeadState {
	head := table.Head()
	if active == "" {
		return model.DetachedHead(head)
	}

	tip, ok := table.Get(active)
	if !ok {
		r.logger.Warn("active branch missing from references, HEAD is detached", zap.String("branch", active))
		return model.DetachedHead(head)
	}
	if tip == head {
		return model.BranchTipHead(active, head)
	}
	return model.BranchBehindHead(active, head)
}

// resolve a checkout or merge target: a branch name, HEAD or a commit id.
//
// The branch is empty unless the target names a branch.
func (r *Repository) resolve(ctx context.Context, table *refs.Table, target string) (id, branch string, err error) {
	if target == model.HeadRef {
		return table.Head(), "", nil
	}
	if id, ok := table.Get(target); ok {
		return id, target, nil
	}

	exists, err := r.snapshots.Exists(ctx, target)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", fmt.Errorf("%w: %q", status.ErrInvalidReference, target)
	}
	return target, "", nil
}
