package model

import "fmt"

// HeadKind enumerates the positions HEAD may be in
type HeadKind uint8

const (
	// Unborn means no reference table has been written yet: nothing was ever committed
	Unborn HeadKind = iota

	// Detached means HEAD is not tracked by the active branch marker
	Detached

	// OnBranchTip means the active branch points at the HEAD commit
	OnBranchTip

	// OnBranchBehind means the active branch exists but points at another commit than HEAD
	OnBranchBehind
)

func (k HeadKind) String() string {
	switch k {
	case Unborn:
		return "unborn"
	case Detached:
		return "detached"
	case OnBranchTip:
		return "on-branch-tip"
	case OnBranchBehind:
		return "on-branch-behind"
	default:
		return fmt.Sprintf("HeadKind(%d)", uint8(k))
	}
}

// HeadState tells where HEAD stands relative to the active branch
type HeadState struct {
	Kind   HeadKind `json:"kind" yaml:"kind"`
	Branch string   `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit string   `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// UnbornHead is the state of a repository without any reference yet
func UnbornHead(branch string) HeadState {
	return HeadState{Kind: Unborn, Branch: branch}
}

// DetachedHead is the state of HEAD when no branch is active
func DetachedHead(commit string) HeadState {
	return HeadState{Kind: Detached, Commit: commit}
}

// BranchTipHead is the state of HEAD at the tip of the active branch
func BranchTipHead(branch, commit string) HeadState {
	return HeadState{Kind: OnBranchTip, Branch: branch, Commit: commit}
}

// BranchBehindHead is the state of HEAD when the active branch has moved elsewhere
func BranchBehindHead(branch, commit string) HeadState {
	return HeadState{Kind: OnBranchBehind, Branch: branch, Commit: commit}
}

func (h HeadState) String() string {
	switch h.Kind {
	case Unborn:
		return fmt.Sprintf("on branch %s, no commits yet", h.Branch)
	case Detached:
		return fmt.Sprintf("HEAD detached at %s", h.Commit)
	case OnBranchTip:
		return fmt.Sprintf("on branch %s", h.Branch)
	case OnBranchBehind:
		return fmt.Sprintf("on branch %s, HEAD at %s", h.Branch, h.Commit)
	default:
		return h.Kind.String()
	}
}
