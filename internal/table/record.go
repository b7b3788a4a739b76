package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record is one data row, positionally aligned to the header. Its length may
// differ from the header's; reading past the end yields the empty string.
type Record []string

// SplitRecord splits a data line into cells. Every delimiter occurrence is a
// field boundary, so adjacent delimiters produce empty cells. The format
// guarantees delimiter-free cell content, so no quote handling is applied.
func SplitRecord(line, delim string) Record {
	return Record(strings.Split(line, delim))
}

// Get returns the cell at the 1-based position, or "" when the record is
// shorter than pos. Positions beyond the header width read whatever the row
// actually carried.
func (r Record) Get(pos int) string {
	if pos < 1 || pos > len(r) {
		return ""
	}
	return r[pos-1]
}

// Join re-emits the record with the given delimiter.
func (r Record) Join(delim string) string {
	return strings.Join(r, delim)
}

// Source streams records out of a header-described delimited text input.
// The header line is consumed at construction; Next then yields one record
// per data line until io.EOF. Trailing carriage returns are removed at the
// line level so CRLF input reads the same as LF input.
type Source struct {
	sc     *bufio.Scanner
	delim  string
	header *Header
	raw    Record // header fields before name cleanup, BOM stripped
}

// NewSource reads the header line from r. An input without a header line is
// an error: there is nothing to resolve columns against.
func NewSource(r io.Reader, delim string) (*Source, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, errors.New("empty source: no header line")
	}
	line := strings.TrimSuffix(strings.TrimPrefix(sc.Text(), bom), "\r")
	return &Source{
		sc:     sc,
		delim:  delim,
		header: ParseHeader(line, delim),
		raw:    SplitRecord(line, delim),
	}, nil
}

// Header returns the cleaned, resolvable column names.
func (s *Source) Header() *Header { return s.header }

// HeaderRecord returns the header fields as read, without name cleanup.
func (s *Source) HeaderRecord() Record { return s.raw }

// Next returns the next data record, or io.EOF at end of input.
func (s *Source) Next() (Record, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		return nil, io.EOF
	}
	return SplitRecord(strings.TrimSuffix(s.sc.Text(), "\r"), s.delim), nil
}
