package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/adapters/logger"
	"github.com/opticode-ai/opticode/internal/diagnostics"
	"github.com/opticode-ai/opticode/internal/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Submit code for analysis",
	Long: `Submit a source file for analysis and optional optimization,
then print the diagnostic advisories for the result.

Examples:
  opticode analyze script.py                  # Analysis only
  opticode analyze script.py --level level1   # Basic optimization
  opticode analyze script.py --level level2   # Aggressive optimization`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeLevel string

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeLevel, "level", "l", "none", "Optimization level: none, level1, level2")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	level, ok := domain.NormalizeLevel(analyzeLevel)
	if !ok {
		return fmt.Errorf("unknown optimization level %q", analyzeLevel)
	}

	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	client, err := newClient(true)
	if err != nil {
		return err
	}

	log := logger.NewFileLogger()
	metrics := newMetrics(ctx, log)
	defer func() { _ = metrics.Close(ctx) }()

	result, err := client.Analyze(ctx, string(code), level)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := diagnostics.Classify(result.Report)
	metrics.RecordClassification(ctx, report.AdvisoryCount, report.Blocking)

	renderResult(os.Stdout, result, report)
	return nil
}

func renderResult(out io.Writer, result *domain.AnalysisResult, report *diagnostics.Report) {
	if report.Blocking {
		fmt.Fprintln(out, "Analysis aborted:", report.Aborted)
		if report.Language != nil && !report.Language.Accepted {
			fmt.Fprintln(out, "  language:", report.Language.Reason)
		}
		if report.Syntax != nil {
			renderItem(out, "syntax", *report.Syntax)
		}
		return
	}

	if result.PassedErrorCheck {
		fmt.Fprintln(out, "Analysis passed")
	}
	if result.SessionID != nil {
		fmt.Fprintln(out, "Session:", truncateID(*result.SessionID))
	}
	if len(result.Changes) > 0 {
		fmt.Fprintln(out, "Changes:")
		for _, change := range result.Changes {
			fmt.Fprintln(out, "  -", change)
		}
	}

	if report.Empty() {
		fmt.Fprintln(out, "No advisories")
		return
	}

	fmt.Fprintf(out, "%d advisories\n", report.AdvisoryCount)
	for _, item := range report.Security {
		renderItem(out, "security", item)
	}
	for _, item := range report.Runtime {
		renderItem(out, "runtime", item)
	}
	for _, f := range report.Optimizations {
		loc := ""
		if f.Line != "" {
			loc = " (line " + f.Line + ")"
		}
		fmt.Fprintf(out, "  [%s]%s %s\n      tip: %s\n", f.Category, loc, f.Suggestion, f.Tip)
	}
}

func renderItem(out io.Writer, category string, item diagnostics.Item) {
	loc := ""
	if item.Line != "" {
		loc = " (line " + item.Line + ")"
	}
	fmt.Fprintf(out, "  [%s]%s %s\n      tip: %s\n", category, loc, item.Text, item.Tip)
}
