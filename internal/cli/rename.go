package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <new-name>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, cleanup, err := loadCache(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cache.Rename(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	fmt.Printf("Renamed %s to %q\n", truncateID(args[0]), args[1])
	return nil
}
