package stats

import (
	"fmt"
	"strings"
)

// Report holds the results of one analysis pass over a cleaned stream.
type Report struct {
	Mechanics   TokenCount
	HasMechanic bool
	Domains     TokenCount
	HasDomain   bool

	YearRating       float64
	ComplexityRating float64
}

// Render produces the fixed analysis template. Columns that never yielded a
// token render as "none" with a zero count so the report shape stays stable
// for downstream scripting.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "The most popular game mechanics is %s found in %d games\n", orNone(r.Mechanics, r.HasMechanic), r.Mechanics.Count)
	fmt.Fprintf(&b, "The most style of game is %s found in %d games\n", orNone(r.Domains, r.HasDomain), r.Domains.Count)
	b.WriteString("\n")
	fmt.Fprintf(&b, "The correlation between the year of publication and the average rating is %.3f\n", r.YearRating)
	fmt.Fprintf(&b, "The correlation between the complexity of a game and its average rating is %.3f\n", r.ComplexityRating)
	return b.String()
}

func orNone(tc TokenCount, ok bool) string {
	if !ok {
		return "none"
	}
	return tc.Token
}
