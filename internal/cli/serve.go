package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lithium-validation/lithium/internal/logging"
	"github.com/lithium-validation/lithium/internal/mcp"
)

var serveLogFormat string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP validation server over stdio",
	Long: `Serve exposes the validation tools over the Model Context Protocol:
validate_output, validate_with_context, check_hallucination_risk,
validate_claims, get_validation_report, batch_validate, get_statistics.

The server speaks MCP on stdin/stdout; logs go to stderr.

Example:
  lithium serve
  lithium serve --log-format json`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "text", "log format (text, json)")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, serveLogFormat)
	logger := logging.New("serve")

	cfg := loadConfig()
	srv := mcp.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting MCP server on stdio")
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	logger.Info("MCP server stopped")
	return nil
}
