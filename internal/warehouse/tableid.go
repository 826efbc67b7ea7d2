package warehouse

import (
	"fmt"
	"strings"
)

// TableID identifies a destination table by its fully-qualified name.
// The project part is optional; when absent the client's project applies.
// Immutable once parsed.
type TableID struct {
	Project string
	Dataset string
	Table   string
}

// ParseTableID parses "project.dataset.table" or "dataset.table".
func ParseTableID(s string) (TableID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TableID{}, fmt.Errorf("table identifier is empty")
	}
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return TableID{}, fmt.Errorf("invalid table identifier %q", s)
		}
	}
	switch len(parts) {
	case 2:
		return TableID{Dataset: parts[0], Table: parts[1]}, nil
	case 3:
		return TableID{Project: parts[0], Dataset: parts[1], Table: parts[2]}, nil
	default:
		return TableID{}, fmt.Errorf("invalid table identifier %q: want dataset.table or project.dataset.table", s)
	}
}

// String returns the dotted form.
func (t TableID) String() string {
	if t.Project == "" {
		return t.Dataset + "." + t.Table
	}
	return t.Project + "." + t.Dataset + "." + t.Table
}
