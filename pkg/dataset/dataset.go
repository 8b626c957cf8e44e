// Package dataset loads exercise lists for the highlighter from YAML, JSON or FIT files.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

// ErrUnsupportedFormat is returned for file extensions Load does not understand
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Format is the encoding of an exercise file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatFIT  Format = "fit"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".fit":
		return FormatFIT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// file is the on-disk shape: either a bare list or {exercises: [...]}
type file struct {
	Exercises []muscle.Exercise `yaml:"exercises"`
}

// Parse decodes an exercise list. JSON is decoded by the YAML parser, which accepts it.
func Parse(r io.Reader, format Format) ([]muscle.Exercise, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	switch format {
	case FormatFIT:
		return FromFIT(content)
	case FormatYAML, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	var exercises []muscle.Exercise
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&exercises); err != nil {
			return nil, fmt.Errorf("failed to decode exercises: %w", err)
		}
	case yaml.MappingNode:
		var f file
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode exercises: %w", err)
		}
		exercises = f.Exercises
	default:
		return nil, fmt.Errorf("failed to decode exercises: unexpected document kind")
	}

	for i, ex := range exercises {
		if ex.Name == "" {
			return nil, fmt.Errorf("exercise %d: missing name", i)
		}
	}
	return exercises, nil
}

// Load reads an exercise file, choosing the format from its extension
func Load(path string) ([]muscle.Exercise, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Parse(f, format)
}

// Initial is the demo exercise list the server starts with and resets to
func Initial() []muscle.Exercise {
	return []muscle.Exercise{
		{Name: "Bench Press", Muscles: muscle.IDs(muscle.Chest, muscle.Triceps, muscle.FrontDeltoids)},
		{Name: "Deadlift", Muscles: muscle.IDs(muscle.Hamstring, muscle.LowerBack, muscle.Gluteal)},
		{Name: "Extensions lombaires", Muscles: muscle.Refs("Erector Spinae")},
	}
}

// PullUps is the record the demo appends when no exercise is posted
func PullUps() muscle.Exercise {
	return muscle.Exercise{
		Name:    "Pull Ups",
		Muscles: muscle.IDs(muscle.Biceps, muscle.UpperBack, muscle.BackDeltoids),
	}
}
