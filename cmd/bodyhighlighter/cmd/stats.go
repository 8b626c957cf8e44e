package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fitglue/bodyhighlighter/pkg/bootstrap"
	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

var (
	statsData  string
	statsAll   bool
	statsClick []string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-muscle frequency and exercises",
	Long:  "Aggregates an exercise file and prints a table of worked muscles, or click log lines for --click muscles.",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsData, "data", "d", "", "Exercise file (.yaml, .json or .fit)")
	statsCmd.Flags().BoolVarP(&statsAll, "all", "a", false, "Include muscles that were not worked")
	statsCmd.Flags().StringSliceVar(&statsClick, "click", nil, "Print the click log line for these muscles (aliases allowed)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	exercises, err := loadExercises(cfg, statsData)
	if err != nil {
		return err
	}
	stats := muscle.Aggregate(exercises)
	out := cmd.OutOrStdout()

	if len(statsClick) > 0 {
		for _, name := range statsClick {
			id, ok := muscle.NormalizeString(name)
			if !ok {
				return fmt.Errorf("unknown muscle %q", name)
			}
			fmt.Fprintln(out, muscle.ClickEvent{Muscle: id, Data: stats.Get(id)})
		}
		return nil
	}

	ids := stats.Worked()
	if statsAll {
		ids = muscle.All
	}

	p := message.NewPrinter(language.English)
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Muscle", "Frequency", "Exercises"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, id := range ids {
		stat := stats.Get(id)
		table.Append([]string{id.Label(), p.Sprintf("%d", stat.Frequency), strings.Join(stat.Exercises, ", ")})
	}
	table.Render()

	if unknown := muscle.Unrecognised(exercises); len(unknown) > 0 {
		names := make([]string, len(unknown))
		for i, r := range unknown {
			names[i] = r.String()
		}
		p.Fprintf(out, "\n%d unrecognised muscle reference(s) skipped: %s\n", len(unknown), strings.Join(names, ", "))
	}
	return nil
}
