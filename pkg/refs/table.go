// Copyright © 2018 One Concern

package refs

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/oneconcern/wit/pkg/model"
	"github.com/oneconcern/wit/pkg/refs/status"
)

const separator = "="

// Table maps reference names to commit ids, remembering insertion order
type Table struct {
	names []string
	ids   map[string]string
}

// NewTable builds an empty reference table
func NewTable() *Table {
	return &Table{ids: make(map[string]string)}
}

// ParseTable reads a reference table, one name=id entry per line.
//
// Duplicate names keep the position of their first occurrence and the value of their last one.
func ParseTable(data []byte) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		name, id, ok := strings.Cut(text, separator)
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("%w: line %d: %q", status.ErrMalformedTable, line, text)
		}
		t.Set(name, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Bytes renders the table in insertion order
func (t *Table) Bytes() []byte {
	var buf bytes.Buffer
	for _, name := range t.names {
		buf.WriteString(name)
		buf.WriteString(separator)
		buf.WriteString(t.ids[name])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Get the commit id a reference points to
func (t *Table) Get(name string) (string, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Has tells if a reference exists
func (t *Table) Has(name string) bool {
	_, ok := t.ids[name]
	return ok
}

// Set a reference. New names are appended.
func (t *Table) Set(name, id string) {
	if _, ok := t.ids[name]; !ok {
		t.names = append(t.names, name)
	}
	t.ids[name] = id
}

// Head is the commit id HEAD points to, or an empty string
func (t *Table) Head() string {
	return t.ids[model.HeadRef]
}

// Names lists all references, in insertion order
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Branches lists all references but HEAD, in insertion order
func (t *Table) Branches() []string {
	branches := make([]string, 0, len(t.names))
	for _, name := range t.names {
		if name == model.HeadRef {
			continue
		}
		branches = append(branches, name)
	}
	return branches
}

// Len is the number of references in the table
func (t *Table) Len() int {
	return len(t.names)
}

// ValidateBranchName checks that a name can be stored in the reference table
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", status.ErrInvalidBranchName)
	}
	if strings.Contains(name, separator) {
		return fmt.Errorf("%w: %q contains %q", status.ErrInvalidBranchName, name, separator)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", status.ErrInvalidBranchName, name)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains white space", status.ErrInvalidBranchName, name)
	}
	return nil
}
