package table

import (
	"fmt"
	"strings"
)

const bom = "\ufeff"

// Column is a resolved (name, position) pair. Positions are 1-based and
// stable for the lifetime of a run.
type Column struct {
	Name  string
	Index int
}

// Header holds the ordered column names parsed from the first line of a
// source. Names are cleaned (trimmed, trailing CR stripped) for lookups;
// duplicate names resolve to the first occurrence.
type Header struct {
	names []string
}

// ParseHeader splits the raw first line on delim and cleans each name.
// A leading UTF-8 byte-order mark is stripped before splitting.
func ParseHeader(line, delim string) *Header {
	line = strings.TrimPrefix(line, bom)
	raw := strings.Split(line, delim)
	names := make([]string, len(raw))
	for i, t := range raw {
		names[i] = strings.TrimSpace(strings.TrimSuffix(t, "\r"))
	}
	return &Header{names: names}
}

// Len reports the number of columns.
func (h *Header) Len() int { return len(h.names) }

// Name returns the cleaned column name at the 1-based position, or "" if the
// position is out of range.
func (h *Header) Name(pos int) string {
	if pos < 1 || pos > len(h.names) {
		return ""
	}
	return h.names[pos-1]
}

// Names returns the cleaned column names in order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Resolve finds the first column whose cleaned name matches exactly
// (case-sensitive). The second return is false if no column matches.
func (h *Header) Resolve(name string) (Column, bool) {
	for i, n := range h.names {
		if n == name {
			return Column{Name: name, Index: i + 1}, true
		}
	}
	return Column{}, false
}

// ResolveAll resolves every requested name and returns the columns keyed by
// name. If any name is absent the error is a *MissingColumnError listing all
// of them, not just the first.
func (h *Header) ResolveAll(names ...string) (map[string]Column, error) {
	cols := make(map[string]Column, len(names))
	var missing []string
	for _, name := range names {
		c, ok := h.Resolve(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = c
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}
	return cols, nil
}

// MissingColumnError reports every required column name that could not be
// resolved against the header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}
