package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mark3labs/chainform/internal/config"
	"github.com/mark3labs/chainform/internal/ledger"
	"github.com/mark3labs/chainform/internal/logger"
	"github.com/mark3labs/chainform/internal/nats"
	"github.com/mark3labs/chainform/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the submission API",
	Long: `Run the HTTP API that accepts chained form submissions.

Accepted submissions are recorded in an embedded NATS JetStream ledger under
--data-dir. Use --ledger=false to keep them in memory only.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen-addr", config.DefaultListenAddr, "Address to listen on")
	serveCmd.Flags().StringSlice("allowed-origins", config.DefaultAllowedOrigins, "Origins allowed to call the API from a browser (* for any)")
	serveCmd.Flags().Bool("ledger", true, "Record submissions in the embedded JetStream ledger")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !logger.Default.HasFile() {
		logger.Default.SetOutput(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, closeLedger, err := openRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(rec, cfg.AllowedOrigins)

	fmt.Fprintf(cmd.OutOrStdout(), "Submission API listening on %s\n", cfg.ListenAddr)
	return srv.Run(ctx, cfg.ListenAddr)
}

// openRecorder returns the ledger configured by cfg and a function releasing it.
func openRecorder(ctx context.Context, cfg *config.Config) (ledger.Recorder, func(), error) {
	if !cfg.Ledger {
		logger.Info("Ledger disabled, submissions are kept in memory")
		return ledger.NewMemory(), func() {}, nil
	}

	emb, err := nats.Start(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start ledger: %w", err)
	}
	closeFn := func() {
		if err := emb.Close(); err != nil {
			logger.Warn("Error closing ledger: %v", err)
		}
	}

	rec, err := ledger.NewJetStream(ctx, emb.JS)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return rec, closeFn, nil
}
