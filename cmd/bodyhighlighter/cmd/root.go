package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/dataset"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "bodyhighlighter",
	Short:        "Muscle highlight diagrams from exercise data",
	Long:         "Renders anterior and posterior body diagrams coloured by how often each muscle is worked.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML); env vars override it")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadExercises reads path, falling back to the configured data file and then the demo list
func loadExercises(cfg *bootstrap.Config, path string) ([]muscle.Exercise, error) {
	if path == "" {
		path = cfg.DataFile
	}
	if path == "" {
		return dataset.Initial(), nil
	}
	exercises, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return exercises, nil
}
