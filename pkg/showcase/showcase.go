// Package showcase publishes rendered diagrams as public SVG assets.
package showcase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	"github.com/fitglue/bodyhighlighter/pkg/highlighter"
)

// ErrNoStore is returned when exporting without a configured blob store
var ErrNoStore = errors.New("asset storage not configured")

// Asset describes one exported diagram
type Asset struct {
	Model  string `json:"model"`
	Object string `json:"object"`
	URL    string `json:"url"`
}

// Exporter writes highlighter SVGs to a bucket
type Exporter struct {
	Store  shared.BlobStore
	Bucket string
	// BaseURL fronts the bucket (CDN or hosting rewrite). Empty falls back to the raw GCS URL.
	BaseURL string
	Logger  *slog.Logger

	// Attempts bounds upload retries; zero means 3
	Attempts   uint
	RetryDelay time.Duration
}

// Export writes h as <folder>/<model>.svg and returns its public URL.
// An empty folder gets a fresh random one.
func (e *Exporter) Export(ctx context.Context, h *highlighter.Highlighter, folder string) (Asset, error) {
	if e.Store == nil {
		return Asset{}, ErrNoStore
	}
	if folder == "" {
		folder = uuid.NewString()
	}

	var buf bytes.Buffer
	if err := h.WriteSVG(&buf); err != nil {
		return Asset{}, err
	}

	object := fmt.Sprintf("%s/%s.svg", folder, h.Model())
	if err := e.upload(ctx, object, buf.Bytes()); err != nil {
		return Asset{}, fmt.Errorf("failed to upload %s: %w", object, err)
	}

	asset := Asset{Model: string(h.Model()), Object: object, URL: e.URL(object)}
	e.logger().Info("Exported diagram", "url", asset.URL, "highlighter", h)
	return asset, nil
}

// ExportAll exports every highlighter into one shared folder
func (e *Exporter) ExportAll(ctx context.Context, folder string, hs ...*highlighter.Highlighter) ([]Asset, error) {
	if folder == "" {
		folder = uuid.NewString()
	}
	assets := make([]Asset, 0, len(hs))
	for _, h := range hs {
		a, err := e.Export(ctx, h, folder)
		if err != nil {
			return assets, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// URL returns the public URL of an object in the export bucket
func (e *Exporter) URL(object string) string {
	if e.BaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(e.BaseURL, "/"), object)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", e.Bucket, object)
}

func (e *Exporter) upload(ctx context.Context, object string, data []byte) error {
	attempts := e.Attempts
	if attempts == 0 {
		attempts = 3
	}
	delay := e.RetryDelay
	if delay == 0 {
		delay = 200 * time.Millisecond
	}
	return retry.Do(func() error {
		return e.Store.Write(ctx, e.Bucket, object, data)
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			e.logger().Warn("Upload failed, retrying", "object", object, "attempt", n+1, "error", err)
		}),
	)
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
