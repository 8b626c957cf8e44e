// Package server hosts an anterior and a posterior highlighter behind an HTTP API: the
// rendered page, per-model SVGs, click dispatch and dataset edits.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/html"

	shared "github.com/fitglue/bodyhighlighter/pkg"
	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/dataset"
	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
	"github.com/fitglue/bodyhighlighter/pkg/highlighter"
	httputil "github.com/fitglue/bodyhighlighter/pkg/infrastructure/http"
	infrapubsub "github.com/fitglue/bodyhighlighter/pkg/infrastructure/pubsub"
	"github.com/fitglue/bodyhighlighter/pkg/infrastructure/sentry"
	"github.com/fitglue/bodyhighlighter/pkg/showcase"
)

// DemoColors is the palette used when the config sets none
var DemoColors = []string{"#7ed6df", "#e056fd", "#686de0"}

const idlePrompt = "Click a muscle to view its stats"

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Body Highlighter</title></head>
<body>
<section id="anterior-model"></section>
<section id="posterior-model"></section>
<pre id="log"></pre>
</body>
</html>`

// Server owns the page document and both highlighters. Every handler takes mu before
// touching them.
type Server struct {
	cfg      *bootstrap.Config
	svc      *bootstrap.Service
	logger   *slog.Logger
	exporter *showcase.Exporter
	initial  []muscle.Exercise

	mu        sync.Mutex
	data      []muscle.Exercise
	doc       *html.Node
	logNode   *html.Node
	views     map[anatomy.Model]*highlighter.Highlighter
	lastClick *muscle.ClickEvent
}

// New builds the page and mounts one highlighter per model, both rendering initial
func New(cfg *bootstrap.Config, svc *bootstrap.Service, logger *slog.Logger, initial []muscle.Exercise) (*Server, error) {
	doc, err := html.Parse(strings.NewReader(pageTemplate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	containers := map[anatomy.Model]*html.Node{
		anatomy.Anterior:  findByID(doc, "anterior-model"),
		anatomy.Posterior: findByID(doc, "posterior-model"),
	}
	logNode := findByID(doc, "log")
	if containers[anatomy.Anterior] == nil || containers[anatomy.Posterior] == nil || logNode == nil {
		return nil, errors.New("page markup is missing model containers")
	}

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		logger:  logger.With("component", "server"),
		initial: slices.Clone(initial),
		data:    slices.Clone(initial),
		doc:     doc,
		logNode: logNode,
		views:   make(map[anatomy.Model]*highlighter.Highlighter),
		exporter: &showcase.Exporter{
			Store:   svc.Store,
			Bucket:  cfg.AssetsBucket,
			BaseURL: cfg.AssetsBaseURL,
			Logger:  logger.With("component", "showcase"),
		},
	}
	if s.exporter.Bucket == "" {
		s.exporter.Bucket = shared.DefaultAssetsBucket
	}

	colors := cfg.HighlightedColors
	if len(colors) == 0 {
		colors = DemoColors
	}
	onClick := func(e muscle.ClickEvent) { s.lastClick = &e }

	for _, m := range anatomy.Models {
		opts := []highlighter.Option{
			highlighter.WithContainer(containers[m]),
			highlighter.WithModel(m),
			highlighter.WithData(s.data),
			highlighter.WithHighlightedColors(colors...),
			highlighter.WithStyle(highlighter.Style{"width": "240px", "padding": "24px"}),
			highlighter.WithSVGStyle(highlighter.Style{"borderRadius": "16px", "backgroundColor": "#1e272e"}),
			highlighter.WithOnClick(onClick),
			highlighter.WithLogger(logger.With("component", "highlighter")),
		}
		if cfg.BodyColor != "" {
			opts = append(opts, highlighter.WithBodyColor(cfg.BodyColor))
		}
		s.views[m] = highlighter.New(opts...)
	}
	s.renderLog()

	return s, nil
}

// Handler returns the chi router serving every route
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(sentry.Middleware(s.logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handle(s.page))
	r.Get("/stats", s.handle(s.stats))
	r.Get("/models/{model}/diagram.svg", s.handle(s.diagram))
	r.Post("/models/{model}/click/{muscle}", s.handle(s.click))
	r.Post("/exercises", s.handle(s.addExercise))
	r.Post("/reset", s.handle(s.reset))
	r.Post("/export", s.handle(s.export))
	return r
}

// Close destroys both highlighters
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.views {
		h.Destroy()
	}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status := httputil.StatusOf(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("Request failed", "error", err, "path", r.URL.Path)
			sentry.CaptureException(err, map[string]string{"path": r.URL.Path}, s.logger)
		} else {
			s.logger.Debug("Request rejected", "error", err, "path", r.URL.Path)
		}
		httputil.WriteError(w, err)
	}
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := html.Render(&buf, s.doc); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

type statsResponse struct {
	Exercises []muscle.Exercise  `json:"exercises"`
	Muscles   muscle.Stats       `json:"muscles"`
	LastClick *muscle.ClickEvent `json:"last_click,omitempty"`
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	resp := statsResponse{
		Exercises: slices.Clone(s.data),
		Muscles:   s.views[anatomy.Anterior].Stats(),
		LastClick: s.lastClick,
	}
	s.mu.Unlock()

	return httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) view(r *http.Request) (*highlighter.Highlighter, error) {
	m, err := anatomy.ParseModel(chi.URLParam(r, "model"))
	if err != nil {
		return nil, httputil.Wrap(http.StatusNotFound, err)
	}
	return s.views[m], nil
}

func (s *Server) diagram(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.view(r)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.WriteSVG(&buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, err = buf.WriteTo(w)
	return err
}

func (s *Server) click(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "muscle")
	id, ok := muscle.NormalizeString(raw)
	if !ok {
		return httputil.NewError(http.StatusNotFound, "unknown muscle %q", raw)
	}

	s.mu.Lock()
	h, err := s.view(r)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	prev := s.lastClick
	s.lastClick = nil
	if !h.ClickMuscle(id) || s.lastClick == nil {
		s.lastClick = prev
		s.mu.Unlock()
		return httputil.NewError(http.StatusNotFound, "muscle %q is not drawn on the %s model", id, h.Model())
	}
	event := *s.lastClick
	s.renderLog()
	s.mu.Unlock()

	s.logger.Info(event.String(), "muscle", event.Muscle, "model", h.Model())
	s.publishClick(r, event)

	return httputil.WriteJSON(w, http.StatusOK, event)
}

// publishClick notifies subscribers; a failed publish does not fail the click
func (s *Server) publishClick(r *http.Request, event muscle.ClickEvent) {
	if s.svc.Pub == nil {
		return
	}
	ce, err := infrapubsub.NewCloudEvent(shared.EventSourceHighlighter, shared.EventTypeMuscleClicked, event)
	if err != nil {
		s.logger.Warn("Failed to build click event", "error", err)
		return
	}
	msgID, err := s.svc.Pub.PublishCloudEvent(r.Context(), s.cfg.ClickTopic, ce)
	if err != nil {
		s.logger.Warn("Failed to publish click event", "error", err, "topic", s.cfg.ClickTopic)
		sentry.CaptureException(err, map[string]string{"topic": s.cfg.ClickTopic}, s.logger)
		return
	}
	s.logger.Debug("Published click event", "message_id", msgID, "topic", s.cfg.ClickTopic)
}

func (s *Server) addExercise(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return httputil.Wrap(http.StatusBadRequest, err)
	}

	exercise := dataset.PullUps()
	if len(bytes.TrimSpace(body)) > 0 {
		exercise = muscle.Exercise{}
		if err := json.Unmarshal(body, &exercise); err != nil {
			return httputil.NewError(http.StatusBadRequest, "invalid exercise: %v", err)
		}
		if exercise.Name == "" {
			return httputil.NewError(http.StatusBadRequest, "exercise name is required")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append(slices.Clone(s.data), exercise)
	if err := s.sync(); err != nil {
		return err
	}
	s.logger.Info("Exercise added", "name", exercise.Name, "total", len(s.data))
	return httputil.WriteJSON(w, http.StatusCreated, exercise)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = slices.Clone(s.initial)
	s.lastClick = nil
	s.renderLog()
	if err := s.sync(); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) error {
	if s.exporter.Store == nil {
		return httputil.Wrap(http.StatusServiceUnavailable, showcase.ErrNoStore)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.exporter.ExportAll(r.Context(), "", s.views[anatomy.Anterior], s.views[anatomy.Posterior])
	if err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusOK, assets)
}

func (s *Server) sync() error {
	for _, m := range anatomy.Models {
		if err := s.views[m].Update(highlighter.WithData(s.data)); err != nil {
			return fmt.Errorf("failed to update %s highlighter: %w", m, err)
		}
	}
	return nil
}

func (s *Server) renderLog() {
	text := idlePrompt
	if s.lastClick != nil {
		text = s.lastClick.String()
	}
	for s.logNode.FirstChild != nil {
		s.logNode.RemoveChild(s.logNode.FirstChild)
	}
	s.logNode.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
