package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opticode",
	Short: "Client for the OptiCode AI code analysis service",
	Long: `opticode is the command-line client for the OptiCode AI analysis service.

Submit code for analysis and optimization, browse your session history with
filters and search, and review diagnostic advisories for past runs.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
