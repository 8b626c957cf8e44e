package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	infrapubsub "github.com/fitglue/bodyhighlighter/pkg/infrastructure/pubsub"
	infrastorage "github.com/fitglue/bodyhighlighter/pkg/infrastructure/storage"
)

// Config holds configuration for the CLI, server and cloud function
type Config struct {
	ProjectID       string `mapstructure:"project_id"`
	Environment     string `mapstructure:"environment"`
	ListenAddr      string `mapstructure:"listen_addr"`
	LogLevel        string `mapstructure:"log_level"`
	CredentialsFile string `mapstructure:"credentials_file"`

	EnablePublish bool   `mapstructure:"enable_publish"`
	ClickTopic    string `mapstructure:"click_topic"`

	EnableExport  bool   `mapstructure:"enable_export"`
	AssetsBucket  string `mapstructure:"assets_bucket"`
	AssetsBaseURL string `mapstructure:"assets_base_url"`

	SentryDSN string `mapstructure:"sentry_dsn"`

	DataFile          string   `mapstructure:"data_file"`
	BodyColor         string   `mapstructure:"body_color"`
	HighlightedColors []string `mapstructure:"highlighted_colors"`
}

// envBindings maps config keys to environment variables, preferred name first
var envBindings = map[string][]string{
	"project_id":         {"HIGHLIGHTER_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"},
	"environment":        {"HIGHLIGHTER_ENVIRONMENT", "ENVIRONMENT"},
	"listen_addr":        {"HIGHLIGHTER_LISTEN_ADDR"},
	"log_level":          {"HIGHLIGHTER_LOG_LEVEL", "LOG_LEVEL"},
	"credentials_file":   {"HIGHLIGHTER_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"},
	"enable_publish":     {"HIGHLIGHTER_ENABLE_PUBLISH", "ENABLE_PUBLISH"},
	"click_topic":        {"HIGHLIGHTER_CLICK_TOPIC"},
	"enable_export":      {"HIGHLIGHTER_ENABLE_EXPORT"},
	"assets_bucket":      {"HIGHLIGHTER_ASSETS_BUCKET", "SHOWCASE_ASSETS_BUCKET"},
	"assets_base_url":    {"HIGHLIGHTER_ASSETS_BASE_URL", "ASSETS_BASE_URL"},
	"sentry_dsn":         {"HIGHLIGHTER_SENTRY_DSN", "SENTRY_DSN"},
	"data_file":          {"HIGHLIGHTER_DATA_FILE"},
	"body_color":         {"HIGHLIGHTER_BODY_COLOR"},
	"highlighted_colors": {"HIGHLIGHTER_HIGHLIGHTED_COLORS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_id", shared.ProjectID)
	v.SetDefault("environment", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("click_topic", shared.TopicMuscleClicked)
	v.SetDefault("assets_bucket", shared.DefaultAssetsBucket)
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// LoadConfig reads the optional config file at path, then applies environment overrides.
// A missing file is not an error; configuration then comes from the environment alone.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParseLevel maps a level name to slog, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithGroup(name), component: h.component}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	comp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			comp = a.Value.String()
		}
	}
	return &ComponentHandler{Handler: h.Handler.WithAttrs(attrs), component: comp}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false
		}
		return true
	})

	if comp != "" {
		// The component attribute stays in the structured payload
		prefixed := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", comp, r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			prefixed.AddAttrs(a)
			return true
		})
		r = prefixed
	}

	return h.Handler.Handle(ctx, r)
}

// NewLogger creates a JSON logger writing Cloud Logging compatible records to w
func NewLogger(w io.Writer, serviceName, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, GetSlogHandlerOptions(ParseLevel(level)))
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// Service holds initialized dependencies
type Service struct {
	Store  shared.BlobStore
	Pub    shared.Publisher
	Config *Config

	closers []func() error
}

// NewService initializes the publisher and, when export is enabled, blob storage.
// Publishing goes to Pub/Sub only with EnablePublish; otherwise events are logged.
func NewService(ctx context.Context, cfg *Config, logger *slog.Logger) (*Service, error) {
	logger.Info("Initializing service", "project_id", cfg.ProjectID)

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc := &Service{Config: cfg}

	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			logger.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("pubsub init: %w", err)
		}
		svc.Pub = &infrapubsub.PubSubAdapter{Client: psClient}
		svc.closers = append(svc.closers, psClient.Close)
		logger.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		svc.Pub = &infrapubsub.LogPublisher{Logger: logger}
		logger.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	if cfg.EnableExport {
		gcsClient, err := storage.NewClient(ctx, opts...)
		if err != nil {
			svc.Close()
			logger.Error("Storage init failed", "error", err)
			return nil, fmt.Errorf("storage init: %w", err)
		}
		svc.Store = &infrastorage.StorageAdapter{Client: gcsClient}
		svc.closers = append(svc.closers, gcsClient.Close)
		logger.Info("Storage: GCS", "bucket", cfg.AssetsBucket)
	}

	return svc, nil
}

// Close releases the cloud clients opened by NewService
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}
