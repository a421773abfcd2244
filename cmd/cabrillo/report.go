package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Render a statistics report for a log",
	Long: `Render a statistics report for a log as Markdown, or as a standalone
HTML page with --html.

Example:
  cabrillo report contest.log
  cabrillo report contest.log --html --out report.html`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, logger, table := setup(cmd)
		defer func() { _ = logger.Sync() }()

		asHTML, _ := cmd.Flags().GetBool("html")
		out, _ := cmd.Flags().GetString("out")

		filter, err := filterFromFlags(cmd)
		if err != nil {
			fail("%v", err)
		}

		log, err := cabrillo.ParseFile(args[0])
		if err != nil {
			fail("Failed to parse log: %v", err)
		}
		sum, err := summarizeLog(context.Background(), log, table, filter)
		if err != nil {
			fail("Failed to compute statistics: %v", err)
		}

		title := strings.TrimSpace(log.Callsign() + " " + log.Contest())
		if title == "" {
			title = args[0]
		}

		var body []byte
		if asHTML {
			body, err = report.HTML(title, sum)
			if err != nil {
				fail("%v", err)
			}
		} else {
			body = []byte(report.Markdown(title, sum))
		}

		w, err := openOutput(out)
		if err != nil {
			fail("%v", err)
		}
		defer func() { _ = w.Close() }()
		if _, err := w.Write(body); err != nil {
			fail("Failed to write report: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("html", false, "Render HTML instead of Markdown")
	reportCmd.Flags().String("out", "", "Write the report to this file instead of stdout")
	addFilterFlags(reportCmd)
}

