// Package stats computes descriptive statistics over a cleaned record
// stream: token frequency ranking for multi-valued categorical columns and
// Pearson correlation between numeric columns. Aggregators hold only their
// accumulator state, so several can fan out over one pass of the same stream.
package stats

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/tabloom/internal/table"
)

// TokenCount pairs a distinct token with its occurrence count.
type TokenCount struct {
	Token string
	Count int
}

// FrequencyAggregator counts comma-separated tokens within one designated
// multi-valued column. A cell like "Hand Management, Dice Rolling" counts
// once for each token, not once for the combined string.
type FrequencyAggregator struct {
	col    table.Column
	counts map[string]int
}

func NewFrequencyAggregator(col table.Column) *FrequencyAggregator {
	return &FrequencyAggregator{col: col, counts: make(map[string]int)}
}

// Add splits the record's cell on commas, trims each token, discards empty
// tokens, and increments the per-token counters.
func (a *FrequencyAggregator) Add(rec table.Record) {
	cell := rec.Get(a.col.Index)
	if cell == "" {
		return
	}
	for _, tok := range strings.Split(cell, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		a.counts[tok]++
	}
}

// Ranked returns the distinct tokens sorted by count descending, ties broken
// by token text ascending.
func (a *FrequencyAggregator) Ranked() []TokenCount {
	out := make([]TokenCount, 0, len(a.counts))
	for tok, n := range a.counts {
		out = append(out, TokenCount{Token: tok, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Token < out[j].Token
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the highest-ranked token. The second return is false when no
// token was ever counted; that is a valid no-data outcome, not an error.
func (a *FrequencyAggregator) Top() (TokenCount, bool) {
	var best TokenCount
	found := false
	for tok, n := range a.counts {
		if !found || n > best.Count || (n == best.Count && tok < best.Token) {
			best = TokenCount{Token: tok, Count: n}
			found = true
		}
	}
	return best, found
}
