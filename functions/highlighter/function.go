package highlighter

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/dataset"
	"github.com/fitglue/bodyhighlighter/pkg/infrastructure/sentry"
	"github.com/fitglue/bodyhighlighter/pkg/server"
)

var (
	handler     http.Handler
	handlerOnce sync.Once
	handlerErr  error
)

func init() {
	functions.HTTP("BodyHighlighter", BodyHighlighter)
}

func initHandler(ctx context.Context) (http.Handler, error) {
	if handler != nil {
		return handler, nil
	}
	handlerOnce.Do(func() {
		handler, handlerErr = newHandler(ctx, os.Getenv("HIGHLIGHTER_CONFIG"))
		if handlerErr != nil {
			slog.Error("Failed to initialize service", "error", handlerErr)
		}
	})
	return handler, handlerErr
}

func newHandler(ctx context.Context, configPath string) (http.Handler, error) {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := bootstrap.NewLogger(os.Stdout, shared.ServiceName, cfg.LogLevel)

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  shared.ServiceName,
	}, logger); err != nil {
		logger.Warn("Continuing without Sentry", "error", err)
	}

	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	data := dataset.Initial()
	if cfg.DataFile != "" {
		if data, err = dataset.Load(cfg.DataFile); err != nil {
			return nil, err
		}
	}

	srv, err := server.New(cfg, svc, logger, data)
	if err != nil {
		return nil, err
	}
	return srv.Handler(), nil
}

// BodyHighlighter is the HTTP entry point serving the highlighter routes
func BodyHighlighter(w http.ResponseWriter, r *http.Request) {
	h, err := initHandler(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500,"status":"Internal Server Error"}`))
		return
	}
	h.ServeHTTP(w, r)
}
