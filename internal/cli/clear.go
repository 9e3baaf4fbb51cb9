package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions",
	Long: `Delete every session in your history.

Requires --yes; there is no undo.`,
	RunE: runClear,
}

var clearConfirmed bool

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearConfirmed, "yes", "y", false, "Confirm deletion of all sessions")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearConfirmed {
		return fmt.Errorf("refusing to clear history without --yes")
	}

	ctx := context.Background()

	cache, cleanup, err := loadCache(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	before := cache.Len()
	if err := cache.RemoveAll(ctx); err != nil {
		return fmt.Errorf("clear incomplete, %d sessions remain: %w", cache.Len(), err)
	}

	fmt.Printf("Deleted %d sessions\n", before)
	return nil
}
