package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/cbt-notebook/internal/adapters/storage/memory"
	"github.com/PabloGalante/cbt-notebook/internal/app/journal"
	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Preview generated sample entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		if n < 1 || n > journal.MaxSampleEntries {
			return fmt.Errorf("count must be between 1 and %d", journal.MaxSampleEntries)
		}
		entries := memory.NewEntryStore().SeedSampleEntries(n)
		printEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

func init() {
	samplesCmd.Flags().IntP("count", "n", 10, "Number of entries to generate")
}

func printEntries(out io.Writer, entries []domain.JournalEntry) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.MaxColWidth = 48
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("DATE"), bold.Sprint("MOOD"), bold.Sprint("RATING"), bold.Sprint("SITUATION"))
	for _, e := range entries {
		tbl.AddRow(e.Timestamp.Format("2006-01-02"), e.Mood, strconv.Itoa(e.Rating), e.Situation)
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(out, tbl)
}
