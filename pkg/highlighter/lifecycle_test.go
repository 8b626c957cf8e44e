package highlighter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"golang.org/x/net/html"

	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

type lifecycleWorld struct {
	container   *html.Node
	highlighter *Highlighter
	lastClick   *muscle.ClickEvent
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (w *lifecycleWorld) aContainer() error {
	w.container = &html.Node{Type: html.ElementNode, Data: "div"}
	return nil
}

func (w *lifecycleWorld) aHighlighterWithPalette(palette string) error {
	w.highlighter = New(
		WithContainer(w.container),
		WithHighlightedColors(splitList(palette)...),
		WithOnClick(func(e muscle.ClickEvent) { w.lastClick = &e }),
	)
	return nil
}

func (w *lifecycleWorld) theExercisesAre(table *godog.Table) error {
	var data []muscle.Exercise
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		freq, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		data = append(data, muscle.Exercise{
			Name:      row.Cells[0].Value,
			Muscles:   muscle.Refs(splitList(row.Cells[1].Value)...),
			Frequency: freq,
		})
	}
	return w.highlighter.Update(WithData(data))
}

func (w *lifecycleWorld) theModelIsSwitchedTo(model string) error {
	m, err := anatomy.ParseModel(model)
	if err != nil {
		return err
	}
	return w.highlighter.Update(WithModel(m))
}

func (w *lifecycleWorld) theMuscleIsFilledWith(id, color string) error {
	polygons := w.highlighter.PolygonsFor(muscle.ID(id))
	if len(polygons) == 0 {
		return fmt.Errorf("muscle %s is not drawn", id)
	}
	for _, p := range polygons {
		style, _ := attr(p, "style")
		if !strings.Contains(style, "fill: "+color+";") {
			return fmt.Errorf("muscle %s has style %q, want fill %s", id, style, color)
		}
	}
	return nil
}

func (w *lifecycleWorld) theMuscleIsFilledWithTheBodyColor(id string) error {
	return w.theMuscleIsFilledWith(id, DefaultBodyColor)
}

func (w *lifecycleWorld) theMuscleIsClicked(id string) error {
	if !w.highlighter.ClickMuscle(muscle.ID(id)) {
		return fmt.Errorf("click on %s was not handled", id)
	}
	return nil
}

func (w *lifecycleWorld) theClickReports(id string, frequency int, exercises string) error {
	if w.lastClick == nil {
		return fmt.Errorf("no click recorded")
	}
	if w.lastClick.Muscle != muscle.ID(id) {
		return fmt.Errorf("clicked %s, want %s", w.lastClick.Muscle, id)
	}
	if w.lastClick.Data.Frequency != frequency {
		return fmt.Errorf("frequency %d, want %d", w.lastClick.Data.Frequency, frequency)
	}
	got := strings.Join(w.lastClick.Data.Exercises, ",")
	if got != exercises {
		return fmt.Errorf("exercises %q, want %q", got, exercises)
	}
	return nil
}

func (w *lifecycleWorld) theHighlighterIsDestroyed() error {
	w.highlighter.Destroy()
	return nil
}

func (w *lifecycleWorld) theContainerIsEmpty() error {
	if w.container.FirstChild != nil {
		return fmt.Errorf("container still has children")
	}
	return nil
}

func (w *lifecycleWorld) theHighlighterHasNoPolygons() error {
	if n := len(w.highlighter.Polygons()); n != 0 {
		return fmt.Errorf("%d polygons left", n)
	}
	return nil
}

func (w *lifecycleWorld) updatingTheHighlighterFails() error {
	if err := w.highlighter.Update(WithBodyColor("#000")); err == nil {
		return fmt.Errorf("expected update after destroy to fail")
	}
	return nil
}

func initializeLifecycleScenario(ctx *godog.ScenarioContext) {
	w := &lifecycleWorld{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*w = lifecycleWorld{}
		return ctx, nil
	})

	ctx.Step(`^a container$`, w.aContainer)
	ctx.Step(`^a highlighter mounted in the container with palette "([^"]*)"$`, w.aHighlighterWithPalette)
	ctx.Step(`^the exercises are:$`, w.theExercisesAre)
	ctx.Step(`^the model is switched to "([^"]*)"$`, w.theModelIsSwitchedTo)
	ctx.Step(`^the "([^"]*)" muscle is filled with "([^"]*)"$`, w.theMuscleIsFilledWith)
	ctx.Step(`^the "([^"]*)" muscle is filled with the body color$`, w.theMuscleIsFilledWithTheBodyColor)
	ctx.Step(`^the "([^"]*)" muscle is clicked$`, w.theMuscleIsClicked)
	ctx.Step(`^the click reports "([^"]*)" with frequency (\d+) and exercises "([^"]*)"$`, w.theClickReports)
	ctx.Step(`^the highlighter is destroyed$`, w.theHighlighterIsDestroyed)
	ctx.Step(`^the container is empty$`, w.theContainerIsEmpty)
	ctx.Step(`^the highlighter has no polygons$`, w.theHighlighterHasNoPolygons)
	ctx.Step(`^updating the highlighter fails$`, w.updatingTheHighlighterFails)
}

func TestLifecycleFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "highlighter-lifecycle",
		ScenarioInitializer: initializeLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
