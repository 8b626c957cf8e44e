// Package anatomy holds the static body outlines the highlighter draws: for each model
// orientation, the polygons that make up every muscle region on a 100x200 canvas.
package anatomy

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

//go:embed shapes/*.yaml
var shapesFS embed.FS

// ErrUnknownModel is returned by ParseModel for anything but anterior/posterior
var ErrUnknownModel = errors.New("unknown model type")

// Model is the body orientation that is drawn
type Model string

const (
	Anterior  Model = "anterior"
	Posterior Model = "posterior"
)

// Models lists the supported orientations
var Models = []Model{Anterior, Posterior}

// ParseModel accepts "anterior"/"front" and "posterior"/"back", case-insensitively
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anterior", "front":
		return Anterior, nil
	case "posterior", "back":
		return Posterior, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

func (m Model) String() string {
	return string(m)
}

// Region is one muscle region; multi-part regions carry several polygons
type Region struct {
	Muscle   muscle.ID `yaml:"muscle"`
	Polygons []string  `yaml:"polygons"`
}

var (
	loadOnce sync.Once
	regions  map[Model][]Region
	loadErr  error
)

func load() {
	regions = make(map[Model][]Region, len(Models))
	for _, m := range Models {
		content, err := shapesFS.ReadFile(fmt.Sprintf("shapes/%s.yaml", m))
		if err != nil {
			loadErr = fmt.Errorf("failed to read %s shapes: %w", m, err)
			return
		}
		var rs []Region
		if err := yaml.Unmarshal(content, &rs); err != nil {
			loadErr = fmt.Errorf("failed to parse %s shapes: %w", m, err)
			return
		}
		for _, r := range rs {
			if !r.Muscle.Valid() {
				loadErr = fmt.Errorf("%s shapes: unknown muscle %q", m, r.Muscle)
				return
			}
		}
		regions[m] = rs
	}
}

// Regions returns the regions drawn for a model in paint order. Anything other than
// Anterior is drawn from the posterior table. The returned slice must not be modified.
func Regions(m Model) []Region {
	loadOnce.Do(load)
	if loadErr != nil {
		// The tables are embedded at build time; a broken table is a programming error.
		panic(loadErr)
	}
	if m == Anterior {
		return regions[Anterior]
	}
	return regions[Posterior]
}

// Muscles returns the distinct muscles drawn for a model, in paint order
func Muscles(m Model) []muscle.ID {
	var ids []muscle.ID
	seen := make(map[muscle.ID]bool)
	for _, r := range Regions(m) {
		if !seen[r.Muscle] {
			seen[r.Muscle] = true
			ids = append(ids, r.Muscle)
		}
	}
	return ids
}
