package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/airlens-cli/internal/report"
	"github.com/veridata-labs/airlens-cli/internal/store"
	"github.com/veridata-labs/airlens-cli/internal/utils"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Browse saved processing results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no config loaded, cannot resolve results dir")
		}
		results, err := store.NewFSStore(cfg.ResultsDir).List(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No saved results")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  %s  %s  (%d points, %d zones)\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name,
				r.Result.Summary.TotalPoints, r.Result.Summary.ZoneCount)
		}
		return nil
	},
}

var resultsShowFormat string

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no config loaded, cannot resolve results dir")
		}
		saved, err := store.NewFSStore(cfg.ResultsDir).Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		switch resultsShowFormat {
		case "json":
			b, err := utils.PrettyJSON(saved)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		case "markdown", "md":
			fmt.Println(report.Markdown(saved.Name, saved.Result))
		default:
			return fmt.Errorf("unsupported --format: %s (use json or markdown)", resultsShowFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	resultsShowCmd.Flags().StringVarP(&resultsShowFormat, "format", "f", "markdown", "output format: json | markdown")
}
