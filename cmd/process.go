package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/airlens-cli/internal/parser"
	"github.com/veridata-labs/airlens-cli/internal/pipeline"
	"github.com/veridata-labs/airlens-cli/internal/report"
	"github.com/veridata-labs/airlens-cli/internal/store"
	"github.com/veridata-labs/airlens-cli/internal/utils"
)

var (
	procFormat     string
	procOutputPath string
	procSave       bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process a pollution dataset into zones, routes, trends and forecasts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		records, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		res := pipeline.NewProcessor().Process(records)
		if debug {
			fmt.Fprintf(os.Stderr, "parsed %d records, extracted %d points (dropped %d)\n",
				len(records), res.Summary.TotalPoints, res.DroppedRows)
		}

		name := filepath.Base(path)
		var out []byte
		switch procFormat {
		case "json":
			out, err = utils.PrettyJSON(res)
		case "markdown", "md":
			out = []byte(report.Markdown(name, res))
		case "geojson":
			out, err = report.GeoJSON(res)
		default:
			return fmt.Errorf("unsupported --format: %s (use json, markdown or geojson)", procFormat)
		}
		if err != nil {
			return err
		}

		if procSave {
			if cfg == nil {
				return fmt.Errorf("no config loaded, cannot resolve results dir")
			}
			saved, err := store.NewFSStore(cfg.ResultsDir).Save(cmd.Context(), name, res)
			if err != nil {
				return fmt.Errorf("save result: %w", err)
			}
			fmt.Fprintf(os.Stderr, "✓ Saved result %s\n", saved.ID)
		}

		if procOutputPath != "" {
			if err := os.WriteFile(procOutputPath, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote %s output to %s\n", procFormat, procOutputPath)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVarP(&procFormat, "format", "f", "json", "output format: json | markdown | geojson")
	processCmd.Flags().StringVarP(&procOutputPath, "output", "o", "", "optional path to write output")
	processCmd.Flags().BoolVar(&procSave, "save", false, "persist the result to the local results store")
}
