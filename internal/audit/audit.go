// Package audit counts missing values per column of a delimited source.
package audit

import (
	"io"
	"strings"

	"github.com/KaramelBytes/tabloom/internal/table"
)

// ColumnCount pairs a cleaned column name with its empty-cell tally.
type ColumnCount struct {
	Name  string
	Empty int
}

// CountEmpty streams every data record and tallies, per header position, how
// many records have an empty cell there. Cells a short row never carried
// count as empty; fields beyond the header width are ignored.
func CountEmpty(src *table.Source) ([]ColumnCount, error) {
	h := src.Header()
	counts := make([]ColumnCount, h.Len())
	for i := range counts {
		counts[i].Name = h.Name(i + 1)
	}
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for pos := 1; pos <= h.Len(); pos++ {
			if strings.TrimSuffix(rec.Get(pos), "\r") == "" {
				counts[pos-1].Empty++
			}
		}
	}
	return counts, nil
}
