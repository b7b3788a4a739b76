package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabloom/internal/clean"
	cfgpkg "github.com/KaramelBytes/tabloom/internal/config"
	"github.com/KaramelBytes/tabloom/internal/stats"
	"github.com/KaramelBytes/tabloom/internal/table"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Report top mechanics, top domain, and rating correlations",
	Long: `Analyze streams the cleaned form of a delimited file once, fanning the
records out to two token-frequency aggregators (Mechanics, Domains) and two
Pearson correlation calculators (year/rating and complexity/rating), then
prints a fixed textual report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		delim, err := inputDelimiter(c)
		if err != nil {
			return err
		}
		path := args[0]

		// Pre-pass: resolve every required column first so a failure lists
		// all missing names, then seed the identifier sequence.
		cols, seq, err := resolveAndSeed(path, delim, c)
		if err != nil {
			return err
		}
		idCol := cols[c.Columns.ID]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer f.Close()
		src, err := table.NewSource(f, delim)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var numeric []table.Column
		for _, name := range c.NumericColumns {
			if col, ok := src.Header().Resolve(name); ok {
				numeric = append(numeric, col)
			}
		}
		n := clean.New(clean.Options{
			OutputDelimiter: c.OutputDelimiter,
			Width:           src.Header().Len(),
			IDColumn:        idCol,
			NumericColumns:  numeric,
		}, seq)

		mechanics := stats.NewFrequencyAggregator(cols[c.Columns.Mechanics])
		domains := stats.NewFrequencyAggregator(cols[c.Columns.Domains])
		yearRating := stats.NewCorrelationCalculator(cols[c.Columns.Year], cols[c.Columns.Rating])
		complexityRating := stats.NewCorrelationCalculator(cols[c.Columns.Complexity], cols[c.Columns.Rating])

		// One pass over the cleaned stream, all aggregators in lock-step.
		// The non-ASCII filter runs per cell here so tokens count under the
		// same spelling a re-analysis of the cleaned output would see.
		for {
			rec, err := src.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}
			cleaned := clean.StripRecordNonASCII(n.Apply(rec))
			mechanics.Add(cleaned)
			domains.Add(cleaned)
			yearRating.Add(cleaned)
			complexityRating.Add(cleaned)
		}

		rep := stats.Report{
			YearRating:       yearRating.Coefficient(),
			ComplexityRating: complexityRating.Coefficient(),
		}
		rep.Mechanics, rep.HasMechanic = mechanics.Top()
		rep.Domains, rep.HasDomain = domains.Top()
		fmt.Fprint(cmd.OutOrStdout(), rep.Render())
		return nil
	},
}

// resolveAndSeed opens the source once to resolve every required column and
// run the identifier seeding pre-pass. Resolution happens before seeding so
// the MissingColumn error identifies all absent names, not just the
// primary key.
func resolveAndSeed(path, delim string, c *cfgpkg.Global) (map[string]table.Column, *clean.IDSequencer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	src, err := table.NewSource(f, delim)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	cols, err := src.Header().ResolveAll(c.RequiredColumns()...)
	if err != nil {
		return nil, nil, err
	}
	seq, err := clean.SeedFromColumn(src, cols[c.Columns.ID])
	if err != nil {
		return nil, nil, fmt.Errorf("seed identifiers: %w", err)
	}
	return cols, seq, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
