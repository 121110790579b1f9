package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ironsheep/image-cropper-mcp/internal/config"
	"github.com/ironsheep/image-cropper-mcp/internal/observability"
	"github.com/ironsheep/image-cropper-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "image-cropper-mcp",
		Short: "MCP server for interactive image cropping",
		Long: `image-cropper-mcp serves cropping sessions over the Model Context Protocol.

Clients open an image, drive a selection with pointer events, drag and
resize the crop area, and export it as cropped-image.png at the image's
natural resolution.

The server communicates via MCP over stdin/stdout. Configure it in your
MCP client. Settings come from an optional YAML file (--config) and
IMAGE_CROPPER_* environment variables, e.g. IMAGE_CROPPER_LOGGER_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, os.Stdin, os.Stdout)
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-cropper-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

// run serves MCP until in is closed or ctx is cancelled. Logs go to stderr
// because stdout carries the protocol.
func run(ctx context.Context, cfg *config.Config, in *os.File, out io.Writer) error {
	logger := observability.NewStderrLogger(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	if term.IsTerminal(int(in.Fd())) {
		logger.Warn("stdin is a terminal; this server speaks MCP (JSON-RPC over stdio) and is normally launched by an MCP client")
	}

	logger.Info("Starting image-cropper-mcp",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	srv := server.New(cfg, logger, Version)
	if err := srv.Serve(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
