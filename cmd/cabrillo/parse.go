package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Cabrillo log and print it",
	Long: `Parse a Cabrillo log and print its headers and QSOs.

With --output cabrillo the log is written back in normalized Cabrillo form.

Example:
  cabrillo parse contest.log
  cabrillo parse contest.log --output cabrillo > normalized.log`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := parseLog(args[0], output); err != nil {
			fail("Failed to parse log: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("output", "o", "json", "Output format (json or cabrillo)")
}

func parseLog(path, output string) error {
	log, err := cabrillo.ParseFile(path)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		return printJSON(log)
	case "cabrillo":
		fmt.Print(log.String())
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
