package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/adapters/logger"
	"github.com/opticode-ai/opticode/internal/adapters/sqlite"
	"github.com/opticode-ai/opticode/internal/infrastructure/config"
	"github.com/opticode-ai/opticode/internal/util"
	"github.com/opticode-ai/opticode/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development backend",
	Long: `Run a local stand-in for the OptiCode backend, backed by SQLite.

Point the client at it with OPTICODE_API_URL=http://localhost:5000.

Examples:
  opticode serve                 # Listen on :5000, default database
  opticode serve --addr :8080    # Listen on a different port`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides OPTICODE_SERVE_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.DBPath == "" {
		dataDir, err := util.DataDir()
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		cfg.DBPath = filepath.Join(dataDir, "opticode.db")
	}

	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	server := web.NewServer(sqlite.NewSessionStore(db), cfg.Addr, logger.NewFileLogger())
	return server.Start(ctx)
}
