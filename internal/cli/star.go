package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star <session-id>",
	Short: "Toggle a session's starred flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runStar,
}

func init() {
	rootCmd.AddCommand(starCmd)
}

func runStar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, cleanup, err := loadCache(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cache.ToggleStar(ctx, args[0]); err != nil {
		return fmt.Errorf("star toggle failed: %w", err)
	}

	session, ok := cache.Get(args[0])
	if ok && session.Starred {
		fmt.Printf("Starred %s\n", truncateID(args[0]))
	} else {
		fmt.Printf("Unstarred %s\n", truncateID(args[0]))
	}
	return nil
}
