package model

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	// IDAlphabet lists the characters commit ids are drawn from.
	//
	// This matches the ids of existing repositories: lowercase letters a-f and digits.
	IDAlphabet = "abcdef0123456789"

	// IDLength is the length of a commit id
	IDLength = 40

	// TimestampLayout is the format of the timestamp line in commit metadata
	TimestampLayout = "Mon Jan 02 15:04:05 2006 -0700"

	parentPrefix    = "parent="
	noParent        = "None"
	parentSeparator = ", "
)

// Commit describes an immutable snapshot of the staging area
type Commit struct {
	ID        string    `json:"id" yaml:"id"`
	Parents   []string  `json:"parents,omitempty" yaml:"parents,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Message   string    `json:"message" yaml:"message"`
	_         struct{}
}

// IsRoot tells if this commit starts a history
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsMerge tells if this commit has more than one parent
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// FormatMetadata renders the metadata file of a commit:
//
//	parent=<id>[, <id>] | parent=None
//	<timestamp>
//	<message>
func FormatMetadata(c Commit) []byte {
	var buf bytes.Buffer
	buf.WriteString(parentPrefix)
	if c.IsRoot() {
		buf.WriteString(noParent)
	} else {
		buf.WriteString(strings.Join(c.Parents, parentSeparator))
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Timestamp.Format(TimestampLayout))
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// ParseMetadata reads back the metadata file of commit id.
//
// Every line past the timestamp belongs to the message.
func ParseMetadata(id string, data []byte) (Commit, error) {
	lines := strings.SplitN(strings.TrimSuffix(string(data), "\n"), "\n", 3)
	if len(lines) < 2 {
		return Commit{}, MetadataErr{msg: fmt.Sprintf("commit %s: truncated metadata", id)}
	}

	parents, err := ParseParents(lines[0])
	if err != nil {
		return Commit{}, MetadataErr{msg: fmt.Sprintf("commit %s: %v", id, err)}
	}

	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(lines[1]))
	if err != nil {
		return Commit{}, MetadataErr{msg: fmt.Sprintf("commit %s: invalid timestamp: %v", id, err)}
	}

	c := Commit{
		ID:        id,
		Parents:   parents,
		Timestamp: ts,
	}
	if len(lines) > 2 {
		c.Message = lines[2]
	}
	return c, nil
}

// ParseParents parses the parent line of commit metadata
func ParseParents(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, parentPrefix) {
		return nil, fmt.Errorf("expected %q, got %q", parentPrefix, line)
	}
	value := strings.TrimSpace(strings.TrimPrefix(line, parentPrefix))
	if value == noParent || value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	parents := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			return nil, fmt.Errorf("empty parent in %q", line)
		}
		parents = append(parents, p)
	}
	return parents, nil
}
