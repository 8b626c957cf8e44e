package highlighter

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

const (
	DefaultBodyColor    = "#B6BDC3"
	DefaultWrapperClass = "rbh-wrapper"
	DefaultModel        = anatomy.Anterior
)

// DefaultHighlightedColors is the palette used when none is configured, lowest intensity first
var DefaultHighlightedColors = []string{"#81b1e1", "#2a7de1", "#1a5fb4"}

// ClickFunc receives the clicked muscle and its aggregated stats
type ClickFunc func(muscle.ClickEvent)

type options struct {
	bodyColor         string
	data              []muscle.Exercise
	highlightedColors []string
	onClick           ClickFunc
	container         *html.Node
	wrapperClassName  string
	style             Style
	svgStyle          Style
	model             anatomy.Model
	logger            *slog.Logger

	// containerSet is raised by WithContainer so Update knows to remount or detach
	containerSet bool
}

func defaultOptions() options {
	return options{
		bodyColor:         DefaultBodyColor,
		highlightedColors: append([]string(nil), DefaultHighlightedColors...),
		wrapperClassName:  DefaultWrapperClass,
		model:             DefaultModel,
		logger:            slog.New(slog.DiscardHandler),
	}
}

// Option sets one field on creation or update. Only the fields named by the options
// passed to Update change; everything else keeps its current value.
type Option func(*options)

// WithBodyColor sets the fill used for muscles that were not worked
func WithBodyColor(color string) Option {
	return func(o *options) {
		o.bodyColor = color
	}
}

// WithData replaces the exercise list. The slice is read, never modified.
func WithData(data []muscle.Exercise) Option {
	return func(o *options) {
		o.data = data
	}
}

// WithHighlightedColors replaces the intensity palette, lowest intensity first.
// A nil palette leaves every muscle in the body colour.
func WithHighlightedColors(colors ...string) Option {
	return func(o *options) {
		o.highlightedColors = append([]string{}, colors...)
	}
}

// WithOnClick sets the click callback; nil disables click notification
func WithOnClick(fn ClickFunc) Option {
	return func(o *options) {
		o.onClick = fn
	}
}

// WithContainer sets the node the wrapper is mounted into. Passing nil detaches it.
func WithContainer(container *html.Node) Option {
	return func(o *options) {
		o.container = container
		o.containerSet = true
	}
}

// WithWrapperClassName sets the wrapper's class; empty restores the default
func WithWrapperClassName(name string) Option {
	return func(o *options) {
		o.wrapperClassName = name
	}
}

// WithStyle sets the wrapper's inline style
func WithStyle(style Style) Option {
	return func(o *options) {
		o.style = style
	}
}

// WithSVGStyle sets the svg element's inline style
func WithSVGStyle(style Style) Option {
	return func(o *options) {
		o.svgStyle = style
	}
}

// WithModel selects the anterior or posterior body
func WithModel(model anatomy.Model) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithLogger sets the logger used for render diagnostics; nil is ignored
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
