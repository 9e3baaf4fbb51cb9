package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/domain"
	"github.com/opticode-ai/opticode/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List analysis sessions",
	Long: `List your analysis sessions, newest first, with optional filters.

Examples:
  opticode history                        # All sessions
  opticode history --filter starred       # Starred sessions only
  opticode history --filter level2        # Level 2 optimizations
  opticode history --search fibonacci     # Sessions matching a query`,
	RunE: runHistory,
}

var (
	historyFilter string
	historySearch string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "all", "Filter: all, starred, level1, level2, analysis")
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "Case-insensitive text search")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	filter, err := history.ParseFilter(historyFilter)
	if err != nil {
		return err
	}

	cache, cleanup, err := loadCache(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	projector := history.NewProjector(cache)
	sessions := projector.Project(filter, historySearch)

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}
	renderSessions(os.Stdout, sessions)
	return nil
}

func renderSessions(out io.Writer, sessions []*domain.Session) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLEVEL\tSTARRED\tCREATED")
	fmt.Fprintln(w, "--\t----\t-----\t-------\t-------")

	for _, s := range sessions {
		starred := ""
		if s.Starred {
			starred = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(s.ID), s.Name, s.Level, starred, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
