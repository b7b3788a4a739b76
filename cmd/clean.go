package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabloom/internal/clean"
	"github.com/KaramelBytes/tabloom/internal/table"
)

var (
	cleanOutputPath string
	cleanReportPath string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Normalize a raw table into canonical tab-separated form",
	Long: `Clean rewrites a raw delimited file as a tab-separated stream on stdout:
line endings are canonicalized, decimal commas become periods on the
configured numeric columns, blank identifiers are filled from a sequence
seeded above every identifier already in the file, and non-ASCII bytes are
dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		delim, err := inputDelimiter(c)
		if err != nil {
			return err
		}
		path := args[0]

		// Pre-pass: the identifier seed depends on the global maximum, so it
		// must be known before the first row is emitted.
		seq, idCol, err := seedSequence(path, delim, c.Columns.ID)
		if err != nil {
			return err
		}

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
			// Absent numeric columns are tolerated; substitution is skipped.
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

		var out io.Writer = cmd.OutOrStdout()
		if cleanOutputPath != "" {
			of, err := os.Create(cleanOutputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer of.Close()
			out = of
		}
		w := bufio.NewWriter(out)
		fmt.Fprintln(w, n.HeaderLine(src.HeaderRecord()))
		for {
			rec, err := src.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("clean %s: %w", path, err)
			}
			fmt.Fprintln(w, n.Line(n.Apply(rec)))
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}

		if cleanReportPath != "" {
			rep := clean.NewRunReport(path, seq.Seed(), n.Operations())
			if err := rep.Save(cleanReportPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote run report to %s (%d identifiers synthesized)\n", cleanReportPath, len(n.Operations()))
		}
		return nil
	},
}

// seedSequence runs the seeding pre-pass over the primary-key column. A
// primary-key column missing from the header is fatal before any record is
// normalized, since identifier synthesis requires it.
func seedSequence(path, delim, idName string) (*clean.IDSequencer, table.Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, table.Column{}, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	src, err := table.NewSource(f, delim)
	if err != nil {
		return nil, table.Column{}, fmt.Errorf("read %s: %w", path, err)
	}
	idCol, ok := src.Header().Resolve(idName)
	if !ok {
		return nil, table.Column{}, &table.MissingColumnError{Columns: []string{idName}}
	}
	seq, err := clean.SeedFromColumn(src, idCol)
	if err != nil {
		return nil, table.Column{}, fmt.Errorf("seed identifiers: %w", err)
	}
	return seq, idCol, nil
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutputPath, "output", "o", "", "write the cleaned stream to a file instead of stdout")
	cleanCmd.Flags().StringVar(&cleanReportPath, "report", "", "write a YAML run report (seed, synthesized identifiers) to this path")
	rootCmd.AddCommand(cleanCmd)
}
