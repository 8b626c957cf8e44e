package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/highlighter"
)

var (
	renderData   string
	renderOut    string
	renderModels []string
	renderColors []string
	renderBody   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write one SVG per body model",
	Long:  "Reads an exercise file (YAML, JSON or FIT) and writes <out>/<model>.svg for each model.",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderData, "data", "d", "", "Exercise file (.yaml, .json or .fit)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "examples_output", "Output directory")
	renderCmd.Flags().StringSliceVarP(&renderModels, "model", "m", nil, "Models to render (anterior, posterior); default both")
	renderCmd.Flags().StringSliceVar(&renderColors, "colors", nil, "Highlight palette, lightest first")
	renderCmd.Flags().StringVar(&renderBody, "body-color", "", "Fill for muscles that were not worked")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	exercises, err := loadExercises(cfg, renderData)
	if err != nil {
		return err
	}

	models := anatomy.Models
	if len(renderModels) > 0 {
		models = nil
		for _, name := range renderModels {
			m, err := anatomy.ParseModel(name)
			if err != nil {
				return err
			}
			models = append(models, m)
		}
	}

	opts := []highlighter.Option{highlighter.WithData(exercises)}
	if colors := firstNonEmpty(renderColors, cfg.HighlightedColors); colors != nil {
		opts = append(opts, highlighter.WithHighlightedColors(colors...))
	}
	if body := firstNonEmpty([]string{renderBody}, []string{cfg.BodyColor}); body != nil {
		opts = append(opts, highlighter.WithBodyColor(body[0]))
	}

	if err := os.MkdirAll(renderOut, 0755); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range models {
		h := highlighter.New(append(opts, highlighter.WithModel(m))...)

		var buf bytes.Buffer
		if err := h.WriteSVG(&buf); err != nil {
			return err
		}
		h.Destroy()

		path := filepath.Join(renderOut, fmt.Sprintf("%s.svg", m))
		fmt.Fprintf(out, "Generating %s...\n", path)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	fmt.Fprintln(out, "Done! Diagrams generated in", renderOut)
	return nil
}

// firstNonEmpty returns the first list holding a non-empty value
func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		for _, v := range l {
			if v != "" {
				return l
			}
		}
	}
	return nil
}
