package table

import (
	"errors"
	"testing"
)

func TestParseHeaderCleansNames(t *testing.T) {
	h := ParseHeader("\ufeff/ID; Name ;Year Published\r", ";")
	if h.Len() != 3 {
		t.Fatalf("expected 3 columns, got %d", h.Len())
	}
	want := []string{"/ID", "Name", "Year Published"}
	for i, w := range want {
		if got := h.Name(i + 1); got != w {
			t.Errorf("column %d: got %q, want %q", i+1, got, w)
		}
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	h := ParseHeader("Name;Score;Name", ";")
	c, ok := h.Resolve("Name")
	if !ok {
		t.Fatal("expected Name to resolve")
	}
	if c.Index != 1 {
		t.Fatalf("duplicate name must resolve to first occurrence, got index %d", c.Index)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	h := ParseHeader("name;score", ";")
	if _, ok := h.Resolve("Name"); ok {
		t.Fatal("resolution must be case-sensitive")
	}
}

func TestResolveAllListsEveryMissingName(t *testing.T) {
	h := ParseHeader("/ID;Mechanics", ";")
	_, err := h.ResolveAll("/ID", "Rating Average", "Mechanics", "Domains")
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnError, got %T", err)
	}
	if len(mce.Columns) != 2 || mce.Columns[0] != "Rating Average" || mce.Columns[1] != "Domains" {
		t.Fatalf("expected both missing names, got %v", mce.Columns)
	}
}

func TestResolveAllReturnsResolvedColumns(t *testing.T) {
	h := ParseHeader("/ID;Rating Average;Mechanics", ";")
	cols, err := h.ResolveAll("/ID", "Mechanics")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cols["/ID"].Index != 1 || cols["Mechanics"].Index != 3 {
		t.Fatalf("unexpected positions: %v", cols)
	}
}

func TestNameOutOfRange(t *testing.T) {
	h := ParseHeader("a;b", ";")
	if got := h.Name(0); got != "" {
		t.Fatalf("position 0 must be empty, got %q", got)
	}
	if got := h.Name(3); got != "" {
		t.Fatalf("position past header must be empty, got %q", got)
	}
}
