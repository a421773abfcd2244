package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/db"
	"github.com/kosciej/cabrillo-log/pkg/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Archive Cabrillo logs dropped into a directory",
	Long: `Watch a directory and archive every Cabrillo log that is created or
rewritten in it. Files are matched by ingest_extensions.

Requires DATABASE_URL unless --dry-run is given, in which case files are
only parsed and validated.

Example:
  cabrillo watch /srv/incoming --existing
  cabrillo watch ./logs --dry-run`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, _ := setup(cmd)
		defer func() { _ = logger.Sync() }()

		dir := args[0]
		existing, _ := cmd.Flags().GetBool("existing")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		settle, _ := cmd.Flags().GetDuration("settle")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")

		var store archive.Store
		if !dryRun {
			if db.URL() == "" {
				fail("DATABASE_URL environment variable is required (or use --dry-run)")
			}
			s, closeStore, err := openArchive(cfg, logger, noMigrate)
			if err != nil {
				fail("%v", err)
			}
			defer closeStore()
			store = s
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ing := watch.New(store, cfg, logger)

		if existing {
			results, err := ing.Dir(ctx, dir)
			if err != nil {
				fail("Failed to ingest existing files: %v", err)
			}
			printResults(results)
		}

		fmt.Printf("Watching %s for Cabrillo logs\n", dir)
		err := ing.Watch(ctx, dir, settle, func(res watch.Result) {
			printResults([]watch.Result{res})
		})
		if err != nil {
			logger.Error("watch failed", zap.Error(err))
			fail("Failed to watch %s: %v", dir, err)
		}
		fmt.Println("\nShutting down...")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("existing", false, "ingest files already in the directory first")
	watchCmd.Flags().Bool("dry-run", false, "only parse and validate, do not archive")
	watchCmd.Flags().Duration("settle", watch.DefaultSettle, "how long a file must be unchanged before it is ingested")
	watchCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
