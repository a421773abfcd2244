package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/stats"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print QSO statistics for a log",
	Long: `Print QSO statistics for a log as JSON.

Every query honours the same filter flags.

Example:
  cabrillo stats contest.log
  cabrillo stats contest.log --band-name 20m --mode CW
  cabrillo stats contest.log --start 2023-10-01T12:00:00Z --end 2023-10-01T18:00:00Z`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, logger, table := setup(cmd)
		defer func() { _ = logger.Sync() }()

		filter, err := filterFromFlags(cmd)
		if err != nil {
			fail("%v", err)
		}

		sum, err := summarizeFile(context.Background(), args[0], table, filter)
		if err != nil {
			fail("Failed to compute statistics: %v", err)
		}
		if err := printJSON(sum); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addFilterFlags(statsCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("band", "", "Only QSOs with this frequency field, e.g. 14000")
	cmd.Flags().String("band-name", "", "Only QSOs on this band, e.g. 20m")
	cmd.Flags().String("country", "", "Only QSOs with stations in this country")
	cmd.Flags().String("mode", "", "Only QSOs in this mode")
	cmd.Flags().Int("cq-zone", 0, "Only QSOs with stations in this CQ zone")
	cmd.Flags().Int("itu-zone", 0, "Only QSOs with stations in this ITU zone")
	cmd.Flags().String("start", "", "Only QSOs at or after this RFC 3339 time")
	cmd.Flags().String("end", "", "Only QSOs at or before this RFC 3339 time")
}

func filterFromFlags(cmd *cobra.Command) (*stats.Filter, error) {
	f := &stats.Filter{}
	f.Band, _ = cmd.Flags().GetString("band")
	f.BandName, _ = cmd.Flags().GetString("band-name")
	f.Country, _ = cmd.Flags().GetString("country")
	f.Mode, _ = cmd.Flags().GetString("mode")
	f.CQZone, _ = cmd.Flags().GetInt("cq-zone")
	f.ITUZone, _ = cmd.Flags().GetInt("itu-zone")

	for name, dst := range map[string]**time.Time{"start": &f.Start, "end": &f.End} {
		v, _ := cmd.Flags().GetString(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", name, err)
		}
		*dst = &t
	}
	return f, nil
}

func summarizeLog(ctx context.Context, log *cabrillo.Log, table *enricher.Table, filter *stats.Filter) (*stats.Summary, error) {
	qs, err := stats.New(ctx, log.QSOs, table)
	if err != nil {
		return nil, err
	}
	defer qs.Close()

	return qs.Summary(ctx, filter)
}

func summarizeFile(ctx context.Context, path string, table *enricher.Table, filter *stats.Filter) (*stats.Summary, error) {
	log, err := cabrillo.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return summarizeLog(ctx, log, table, filter)
}
