package clean

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tabloom/internal/table"
)

var idPattern = regexp.MustCompile(`^\d+$`)

// IDSequencer hands out identifiers for records whose primary-key cell is
// blank. It is seeded above every numeric identifier already present in the
// source, so synthesized values never collide with existing ones and are
// strictly increasing in row order.
type IDSequencer struct {
	seed uint64
	next uint64
}

// SeedFromColumn scans the primary-key column across all remaining records of
// src and returns a sequencer starting at one past the maximum unsigned
// integer found, or at 1 when the source holds no numeric identifier. This is
// a full pre-pass: the caller re-opens the source before normalizing.
func SeedFromColumn(src *table.Source, col table.Column) (*IDSequencer, error) {
	var max uint64
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cell := strings.TrimSpace(rec.Get(col.Index))
		if !idPattern.MatchString(cell) {
			continue
		}
		v, err := strconv.ParseUint(cell, 10, 64)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return &IDSequencer{seed: max + 1, next: max + 1}, nil
}

// Seed returns the first value the sequencer will hand out.
func (s *IDSequencer) Seed() uint64 { return s.seed }

// Next returns the current counter value and advances it.
func (s *IDSequencer) Next() uint64 {
	v := s.next
	s.next++
	return v
}
