package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/history"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, cleanup, err := loadCache(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := removeSession(ctx, cache, args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", truncateID(args[0]))
	return nil
}

// removeSession rejects ids the freshly loaded cache does not hold, so a
// typo is reported instead of vanishing into the cache's idempotent no-op.
func removeSession(ctx context.Context, cache *history.Cache, id string) error {
	if _, ok := cache.Get(id); !ok {
		return fmt.Errorf("session %s not found", id)
	}
	if err := cache.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
