package model

// Edge links a commit to one of its parents in the history graph.
//
// Parent is empty only when the history starts at a root commit and
// this edge is the only way to report that node.
type Edge struct {
	Child  string `json:"child" yaml:"child"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// IsRoot tells if this edge stands for a lone root commit
func (e Edge) IsRoot() bool {
	return e.Parent == ""
}
