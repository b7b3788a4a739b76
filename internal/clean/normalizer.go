// Package clean rewrites a raw delimited source into canonical form:
// tab-delimited, LF-terminated, period decimal marks on designated numeric
// columns, synthesized identifiers for blank primary keys, printable ASCII
// only.
package clean

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/tabloom/internal/table"
)

// Options configures one normalization run. Columns are resolved against the
// header up front; NumericColumns may be empty if none of the configured
// names resolved (decimal normalization is simply skipped for them).
type Options struct {
	OutputDelimiter string
	Width           int // header column count; short rows are padded to it
	IDColumn        table.Column
	NumericColumns  []table.Column
}

// Operation records one synthesized identifier, for the optional run report.
type Operation struct {
	Row    int    `yaml:"row"`
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
	Reason string `yaml:"reason"`
}

// Normalizer applies the per-record cleaning steps. It owns the identifier
// sequencer for the duration of the run and must see records in source row
// order so synthesized identifiers stay reproducible.
type Normalizer struct {
	opt Options
	seq *IDSequencer
	ops []Operation
	row int
}

func New(opt Options, seq *IDSequencer) *Normalizer {
	if opt.OutputDelimiter == "" {
		opt.OutputDelimiter = "\t"
	}
	return &Normalizer{opt: opt, seq: seq}
}

// Apply returns the cleaned form of one record: padded to header width,
// decimal commas replaced with periods on the designated numeric columns, and
// a blank primary-key cell replaced with the next synthesized identifier.
// Fields beyond the header width pass through untouched.
func (n *Normalizer) Apply(rec table.Record) table.Record {
	n.row++
	width := len(rec)
	if width < n.opt.Width {
		width = n.opt.Width
	}
	out := make(table.Record, width)
	copy(out, rec)
	for _, c := range n.opt.NumericColumns {
		if c.Index >= 1 && c.Index <= len(out) {
			out[c.Index-1] = strings.ReplaceAll(out[c.Index-1], ",", ".")
		}
	}
	if id := n.opt.IDColumn.Index; id >= 1 && id <= len(out) {
		if strings.TrimSpace(out[id-1]) == "" {
			v := strconv.FormatUint(n.seq.Next(), 10)
			out[id-1] = v
			n.ops = append(n.ops, Operation{
				Row:    n.row,
				Column: n.opt.IDColumn.Name,
				Value:  v,
				Reason: "missing identifier",
			})
		}
	}
	return out
}

// Line assembles the output line for a cleaned record: structural re-emission
// with the output delimiter, then non-ASCII bytes deleted.
func (n *Normalizer) Line(rec table.Record) string {
	return StripNonASCII(rec.Join(n.opt.OutputDelimiter))
}

// HeaderLine re-emits the header fields with the output delimiter. The header
// has no numeric or identifier semantics, so only delimiter conversion
// applies; non-ASCII bytes are still deleted to keep the output stream pure
// ASCII.
func (n *Normalizer) HeaderLine(raw table.Record) string {
	return StripNonASCII(raw.Join(n.opt.OutputDelimiter))
}

// Operations returns the synthesized-identifier trail in row order.
func (n *Normalizer) Operations() []Operation { return n.ops }

// StripRecordNonASCII applies the non-ASCII filter to every cell of a
// cleaned record, for consumers of the record stream that never assemble
// output lines. Cells carry no tabs or newlines, so this matches filtering
// the assembled line and re-splitting it.
func StripRecordNonASCII(rec table.Record) table.Record {
	for i, cell := range rec {
		rec[i] = StripNonASCII(cell)
	}
	return rec
}

// StripNonASCII deletes every byte outside tab, newline, and the printable
// ASCII range 0x20..0x7E. Bytes are dropped, not replaced, so multi-byte
// sequences vanish entirely.
func StripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' || c == '\n' || (c >= 0x20 && c <= 0x7E) {
			b.WriteByte(c)
		}
	}
	return b.String()
}
