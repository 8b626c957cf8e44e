package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/infrastructure/sentry"
	"github.com/fitglue/bodyhighlighter/pkg/server"
)

var (
	serveAddr string
	serveData string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive anterior/posterior demo",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides listen_addr)")
	serveCmd.Flags().StringVarP(&serveData, "data", "d", "", "Initial exercise file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	logger := bootstrap.NewLogger(os.Stdout, shared.ServiceName, cfg.LogLevel)

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  shared.ServiceName,
	}, logger); err != nil {
		logger.Warn("Continuing without Sentry", "error", err)
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.RecoverAndCapture(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	exercises, err := loadExercises(cfg, serveData)
	if err != nil {
		return err
	}
	srv, err := server.New(cfg, svc, logger, exercises)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
