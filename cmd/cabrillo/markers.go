package main

import (
	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/markers"
)

// markersCmd represents the markers command
var markersCmd = &cobra.Command{
	Use:   "markers <file>",
	Short: "Print the map markers of a log",
	Long: `Print the stations of a log grouped by country as JSON map markers,
the same document POST /upload returns.

Example:
  cabrillo markers contest.log`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, table := setup(cmd)

		log, err := cabrillo.ParseFile(args[0])
		if err != nil {
			fail("Failed to parse log: %v", err)
		}
		if err := printJSON(markers.Build(log, table)); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(markersCmd)
}
