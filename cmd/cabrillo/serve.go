package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	archivegorm "github.com/kosciej/cabrillo-log/pkg/archive/gorm"
	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/db"
	"github.com/kosciej/cabrillo-log/pkg/server"
	"github.com/kosciej/cabrillo-log/pkg/server/endpoints"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and HTTP API",
	Long: `Run the web UI and HTTP API.

In development mode the UI is served from static_dir on port 8000. With
--release the embedded UI is served on port 8010.

Uploaded logs are archived in PostgreSQL when DATABASE_URL is set, and in
memory otherwise. Database migrations run on startup unless --no-migrate
is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, table := setup(cmd)
		defer func() { _ = logger.Sync() }()

		release, _ := cmd.Flags().GetBool("release")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")

		host := cfg.BindAddress
		if cmd.Flags().Changed("bind-address") {
			host, _ = cmd.Flags().GetString("bind-address")
		}
		port := cfg.ServePort(release)
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		staticDir := cfg.StaticDir
		if cmd.Flags().Changed("static-dir") {
			staticDir, _ = cmd.Flags().GetString("static-dir")
		}

		static, err := endpoints.StaticFS(release, staticDir)
		if err != nil {
			fail("%v", err)
		}

		store, closeStore, err := openArchive(cfg, logger, noMigrate)
		if err != nil {
			fail("%v", err)
		}
		defer closeStore()

		s := server.NewServer(cfg, table, store, static, logger, host, strconv.Itoa(port))
		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("running server",
			zap.String("url", "http://"+s.Addr()),
			zap.Bool("release", release),
			zap.Int("countries", table.Len()),
		)
		if err := s.Run(ctx); err != nil {
			logger.Error("server failed", zap.Error(err))
			closeStore()
			os.Exit(1)
		}
		logger.Info("server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("release", false, "serve the embedded UI on the release port")
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "server listen port (default depends on --release)")
	serveCmd.Flags().StringP("bind-address", "b", "0.0.0.0", "server bind address")
	serveCmd.Flags().String("static-dir", "static", "directory served in development mode")
	serveCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

// openArchive returns the PostgreSQL archive when DATABASE_URL is set and
// an in-memory archive otherwise
func openArchive(cfg *config.Config, logger *zap.Logger, noMigrate bool) (archive.Store, func(), error) {
	if db.URL() == "" {
		logger.Warn("DATABASE_URL is not set, archived logs are kept in memory")
		return archive.NewMemoryStore(), func() {}, nil
	}

	if !noMigrate {
		logger.Info("running database migrations")
		if err := runMigrations(); err != nil {
			return nil, nil, err
		}
	}

	database, err := db.Connect(db.Config{Debug: cfg.LogLevel == "debug"})
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(database); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return archivegorm.NewStore(database), closeDB, nil
}
