package core

import (
	"context"

	"github.com/oneconcern/wit/pkg/errors"
	refstatus "github.com/oneconcern/wit/pkg/refs/status"
	"go.uber.org/zap"
)

// BranchInfo describes a branch
type BranchInfo struct {
	Name   string `json:"name" yaml:"name"`
	Commit string `json:"commit" yaml:"commit"`
	Active bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// Branch creates a new branch at HEAD. It returns the commit id of the new branch.
func (r *Repository) Branch(ctx context.Context, name string) (string, error) {
	id, err := r.refs.CreateBranch(ctx, name)
	if err != nil {
		return "", err
	}
	r.logger.Info("branch created", zap.String("branch", name), zap.String("commit", id))
	return id, nil
}

// Branches lists all branches in creation order. It is empty before the first commit.
func (r *Repository) Branches(ctx context.Context) ([]BranchInfo, error) {
	table, err := r.refs.Load(ctx)
	if err != nil {
		if errors.Is(err, refstatus.ErrNotInitialized) {
			return []BranchInfo{}, nil
		}
		return nil, err
	}

	active, err := r.refs.ActiveBranch(ctx)
	if err != nil {
		return nil, err
	}

	names := table.Branches()
	branches := make([]BranchInfo, 0, len(names))
	for _, name := range names {
		id, _ := table.Get(name)
		branches = append(branches, BranchInfo{
			Name:   name,
			Commit: id,
			Active: name == active,
		})
	}
	return branches, nil
}
