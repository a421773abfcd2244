package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/watch"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate one or more Cabrillo logs",
	Long: `Validate one or more Cabrillo logs.

Files are checked concurrently (ingest_concurrency). Every QSO problem is
reported. The command exits non-zero if any file fails.

Example:
  cabrillo validate contest.log
  cabrillo validate logs/*.log`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, _ := setup(cmd)
		defer func() { _ = logger.Sync() }()

		ing := watch.New(nil, cfg, logger)
		results, err := ing.Files(context.Background(), args)
		if err != nil {
			fail("Validation failed: %v", err)
		}

		if failed := printResults(results); failed > 0 {
			fail("%d of %d file(s) failed validation", failed, len(results))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// printResults prints one line per file plus its errors and returns the
// number of failed files
func printResults(results []watch.Result) int {
	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Printf("FAIL %s: %v\n", res.Path, res.Err)
		case len(res.Errors) > 0:
			failed++
			fmt.Printf("FAIL %s: %d QSO(s), %d error(s)\n", res.Path, res.QSOs, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Printf("  %v\n", e)
			}
		default:
			fmt.Printf("OK   %s: %d QSO(s)\n", res.Path, res.QSOs)
		}
	}
	return failed
}
