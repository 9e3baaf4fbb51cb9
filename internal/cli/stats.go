package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newClient(true)
	if err != nil {
		return err
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total sessions\t%d\n", stats.Total)
	fmt.Fprintf(w, "Level 1 runs\t%d\n", stats.Level1Count)
	fmt.Fprintf(w, "Level 2 runs\t%d\n", stats.Level2Count)
	fmt.Fprintf(w, "Starred\t%d\n", stats.StarredCount)
	if stats.LastActive != nil {
		fmt.Fprintf(w, "Last active\t%s\n", stats.LastActive.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(w, "Last active\t-\n")
	}
	w.Flush()
	return nil
}
