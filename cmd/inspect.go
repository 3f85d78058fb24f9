package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
	"github.com/veridata-labs/airlens-cli/internal/parser"
)

var inspectSamples int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the columns and a few sample records of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Records: %d\n", len(records))
		cols := records.Columns()
		fmt.Printf("Columns: %d\n", len(cols))
		for _, c := range cols {
			fmt.Printf("- %s: %s\n", c, columnKind(records, c))
		}
		n := inspectSamples
		if n > len(records) {
			n = len(records)
		}
		if n > 0 {
			fmt.Println("\nSamples:")
			for _, rec := range records[:n] {
				fmt.Println(formatRecord(rec, cols))
			}
		}
		return nil
	},
}

// columnKind reports numeric when every non-empty value coerces to a float.
func columnKind(records dataset.RecordSet, col string) string {
	seen, numeric := 0, 0
	for _, rec := range records {
		v, ok := rec[col]
		if !ok {
			continue
		}
		seen++
		if _, ok := dataset.Float(v); ok {
			numeric++
		}
	}
	switch {
	case seen == 0:
		return "empty"
	case numeric == seen:
		return "numeric"
	case numeric > 0:
		return "mixed"
	default:
		return "text"
	}
}

func formatRecord(rec dataset.Record, cols []string) string {
	out := "  "
	for i, c := range cols {
		if i > 0 {
			out += " | "
		}
		if v, ok := rec[c]; ok {
			out += fmt.Sprintf("%s=%v", c, v)
		} else {
			out += c + "=<nil>"
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectSamples, "samples", 3, "number of sample records to print")
}
