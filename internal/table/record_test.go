package table

import (
	"io"
	"strings"
	"testing"
)

func TestSplitRecordPreservesEmptyFields(t *testing.T) {
	rec := SplitRecord("a;;b;", ";")
	if len(rec) != 4 {
		t.Fatalf("adjacent delimiters must produce empty fields, got %v", rec)
	}
	if rec[1] != "" || rec[3] != "" {
		t.Fatalf("expected empty fields preserved, got %v", rec)
	}
}

func TestRecordGetOutOfRange(t *testing.T) {
	rec := Record{"a", "b"}
	if got := rec.Get(3); got != "" {
		t.Fatalf("reading past record length must yield empty, got %q", got)
	}
	if got := rec.Get(0); got != "" {
		t.Fatalf("position 0 must yield empty, got %q", got)
	}
	if got := rec.Get(2); got != "b" {
		t.Fatalf("got %q, want b", got)
	}
}

func TestSourceStreamsRecords(t *testing.T) {
	in := "/ID;Name\r\n1;Gloomhaven\r\n2;Azul\r\n"
	src, err := NewSource(strings.NewReader(in), ";")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if src.Header().Len() != 2 {
		t.Fatalf("expected 2 header columns, got %d", src.Header().Len())
	}
	var rows []Record
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		rows = append(rows, rec)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rows))
	}
	// CRLF input must read the same as LF input
	if rows[0].Get(2) != "Gloomhaven" {
		t.Fatalf("trailing CR must be stripped, got %q", rows[0].Get(2))
	}
}

func TestSourceRetainsExtraFields(t *testing.T) {
	in := "a;b\n1;2;3;4\n"
	src, err := NewSource(strings.NewReader(in), ";")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(rec) != 4 {
		t.Fatalf("extra fields must be retained positionally, got %v", rec)
	}
	if rec.Get(4) != "4" {
		t.Fatalf("got %q, want 4", rec.Get(4))
	}
}

func TestSourceEmptyInput(t *testing.T) {
	if _, err := NewSource(strings.NewReader(""), ";"); err == nil {
		t.Fatal("expected an error for input without a header line")
	}
}

func TestSourceStripsBOMFromHeaderRecord(t *testing.T) {
	src, err := NewSource(strings.NewReader("\ufeffa;b\n"), ";")
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if got := src.HeaderRecord().Get(1); got != "a" {
		t.Fatalf("BOM must be stripped from the raw header, got %q", got)
	}
}
