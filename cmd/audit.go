package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabloom/internal/audit"
	"github.com/KaramelBytes/tabloom/internal/table"
)

var auditCmd = &cobra.Command{
	Use:   "audit <file> [delimiter]",
	Short: "Count empty cells per column",
	Long:  `Audit reads a delimited file and reports, for every header column in order, how many records have an empty value there. Rows shorter than the header count as empty in the positions they never carried.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		delim, err := inputDelimiter(c)
		if err != nil {
			return err
		}
		if len(args) == 2 {
			delim, err = parseDelimiter(args[1])
			if err != nil {
				return err
			}
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer f.Close()
		src, err := table.NewSource(f, delim)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		counts, err := audit.CountEmpty(src)
		if err != nil {
			return fmt.Errorf("audit %s: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		for _, cc := range counts {
			fmt.Fprintf(out, "%s: %d\n", cc.Name, cc.Empty)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
