// Package highlighter renders an anatomical body diagram as an SVG node tree, colouring
// each muscle region by how often it appears in an exercise list and dispatching clicks
// on muscles to a callback.
//
// A Highlighter owns its node subtree exclusively and is not safe for concurrent use.
package highlighter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	viewBox      = "0 0 100 200"
	svgClass     = "rbh"

	// MuscleAttr carries the muscle id on every polygon
	MuscleAttr = "data-muscle"
)

// ErrDestroyed is returned when a destroyed highlighter is updated
var ErrDestroyed = errors.New("highlighter destroyed")

// Highlighter is one rendered body diagram
type Highlighter struct {
	id      string
	opts    options
	wrapper *html.Node
	svg     *html.Node

	stats     muscle.Stats
	listeners map[*html.Node]func()
	destroyed bool
}

// New builds the wrapper and svg, renders the muscles and mounts the wrapper into the
// container when one is configured.
func New(opts ...Option) *Highlighter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.containerSet = false

	h := &Highlighter{
		id:   uuid.NewString(),
		opts: o,
		wrapper: &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
		},
		svg: &html.Node{
			Type:      html.ElementNode,
			Data:      "svg",
			DataAtom:  atom.Svg,
			Namespace: "svg",
			Attr: []html.Attribute{
				{Key: "xmlns", Val: svgNamespace},
				{Key: "class", Val: svgClass},
				{Key: "width", Val: "100%"},
				{Key: "height", Val: "100%"},
				{Key: "viewBox", Val: viewBox},
			},
		},
	}
	h.applyClassName()
	h.wrapper.AppendChild(h.svg)
	h.applyPresentation()
	h.render()
	h.mount()

	h.opts.logger.Debug("highlighter created", "highlighter_id", h.id, "model", h.opts.model)
	return h
}

// ID identifies this instance in logs and exported assets
func (h *Highlighter) ID() string {
	return h.id
}

// Element returns the wrapper node
func (h *Highlighter) Element() *html.Node {
	return h.wrapper
}

// Model returns the orientation currently drawn
func (h *Highlighter) Model() anatomy.Model {
	return h.opts.model
}

// Data returns the exercise list currently rendered
func (h *Highlighter) Data() []muscle.Exercise {
	return h.opts.data
}

// Update applies the given options on top of the current ones and re-renders every
// polygon. Calling it without options does nothing.
func (h *Highlighter) Update(opts ...Option) error {
	if h.destroyed {
		return ErrDestroyed
	}
	if len(opts) == 0 {
		return nil
	}

	for _, opt := range opts {
		opt(&h.opts)
	}

	if h.opts.containerSet {
		h.opts.containerSet = false
		if h.opts.container == nil {
			h.detach()
		}
	}

	h.applyClassName()
	h.applyPresentation()
	h.render()
	h.mount()

	h.opts.logger.Debug("highlighter updated", "highlighter_id", h.id, "exercises", len(h.opts.data))
	return nil
}

// Destroy removes every rendered polygon and detaches the wrapper from its parent.
// It is safe to call more than once.
func (h *Highlighter) Destroy() {
	if h.destroyed {
		return
	}
	h.clearPolygons()
	h.detach()
	h.destroyed = true
	h.opts.logger.Debug("highlighter destroyed", "highlighter_id", h.id)
}

// Destroyed reports whether Destroy has been called
func (h *Highlighter) Destroyed() bool {
	return h.destroyed
}

// Stats returns the aggregate behind the current rendering
func (h *Highlighter) Stats() muscle.Stats {
	return h.stats
}

// Color returns the fill currently used for a muscle
func (h *Highlighter) Color(id muscle.ID) string {
	if c, ok := muscle.ColorFor(h.stats, h.opts.highlightedColors, id); ok {
		return c
	}
	return h.opts.bodyColor
}

// Click dispatches a click on n. The event bubbles up to the wrapper, so any node inside
// a polygon works too. It reports whether a listener handled the click.
func (h *Highlighter) Click(n *html.Node) bool {
	if h.destroyed {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if fn, ok := h.listeners[cur]; ok {
			fn()
			return true
		}
		if cur == h.wrapper {
			break
		}
	}
	return false
}

// ClickMuscle clicks the first polygon drawn for id. It reports false when the muscle
// is not drawn on this model or no callback is configured.
func (h *Highlighter) ClickMuscle(id muscle.ID) bool {
	polygons := h.PolygonsFor(id)
	if len(polygons) == 0 {
		return false
	}
	return h.Click(polygons[0])
}

// Polygons returns the rendered polygons in paint order
func (h *Highlighter) Polygons() []*html.Node {
	var nodes []*html.Node
	for c := h.svg.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "polygon" {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// PolygonsFor returns the rendered polygons of one muscle
func (h *Highlighter) PolygonsFor(id muscle.ID) []*html.Node {
	var nodes []*html.Node
	for _, n := range h.Polygons() {
		if v, _ := attr(n, MuscleAttr); v == string(id) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Render writes the wrapper and its subtree as HTML
func (h *Highlighter) Render(w io.Writer) error {
	if err := html.Render(w, h.wrapper); err != nil {
		return fmt.Errorf("failed to render highlighter: %w", err)
	}
	return nil
}

// WriteSVG writes the svg element as a standalone SVG document
func (h *Highlighter) WriteSVG(w io.Writer) error {
	if _, err := io.WriteString(w, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"); err != nil {
		return err
	}
	if err := html.Render(w, h.svg); err != nil {
		return fmt.Errorf("failed to render svg: %w", err)
	}
	return nil
}

func (h *Highlighter) render() {
	h.stats = muscle.Aggregate(h.opts.data)
	if unknown := muscle.Unrecognised(h.opts.data); len(unknown) > 0 {
		h.opts.logger.Debug("skipping unrecognised muscles", "highlighter_id", h.id, "count", len(unknown))
	}

	h.clearPolygons()
	h.listeners = make(map[*html.Node]func())

	onClick := h.opts.onClick
	stats := h.stats
	for _, region := range anatomy.Regions(h.opts.model) {
		fill := h.Color(region.Muscle)
		for _, points := range region.Polygons {
			polygon := buildPolygon(region.Muscle, points, fill)
			h.svg.AppendChild(polygon)

			if onClick != nil {
				id := region.Muscle
				h.listeners[polygon] = func() {
					onClick(muscle.ClickEvent{Muscle: id, Data: stats.Get(id)})
				}
			}
		}
	}
}

func buildPolygon(id muscle.ID, points, fill string) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      "polygon",
		Namespace: "svg",
	}
	setAttr(n, "points", points)
	setAttr(n, MuscleAttr, string(id))
	applyInlineStyle(n, Style{"cursor": "pointer", "fill": fill})
	return n
}

func (h *Highlighter) clearPolygons() {
	for h.svg.FirstChild != nil {
		h.svg.RemoveChild(h.svg.FirstChild)
	}
	h.listeners = nil
}

func (h *Highlighter) applyClassName() {
	name := h.opts.wrapperClassName
	if name == "" {
		name = DefaultWrapperClass
	}
	setAttr(h.wrapper, "class", name)
}

func (h *Highlighter) applyPresentation() {
	applyInlineStyle(h.wrapper, h.opts.style)
	applyInlineStyle(h.svg, h.opts.svgStyle)
}

func (h *Highlighter) mount() {
	container := h.opts.container
	if container == nil || h.wrapper.Parent == container {
		return
	}
	h.detach()
	container.AppendChild(h.wrapper)
}

func (h *Highlighter) detach() {
	if h.wrapper.Parent != nil {
		h.wrapper.Parent.RemoveChild(h.wrapper)
	}
}

// LogValue implements slog.LogValuer
func (h *Highlighter) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", h.id),
		slog.String("model", string(h.opts.model)),
		slog.Int("exercises", len(h.opts.data)),
		slog.Bool("destroyed", h.destroyed),
	)
}
