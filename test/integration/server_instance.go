package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	archivegorm "github.com/kosciej/cabrillo-log/pkg/archive/gorm"
	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/server"
	"github.com/kosciej/cabrillo-log/pkg/server/endpoints"
)

// portCounter is used to allocate unique ports for each test server
var portCounter int32 = 19000

// ServerConfig holds configuration for a test server instance
type ServerConfig struct {
	MaxUploadBytes int64
}

// DefaultServerConfig returns the default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		MaxUploadBytes: 10 << 20,
	}
}

// ServerInstance represents a running server for a single test
type ServerInstance struct {
	Server        *server.Server
	ServerURL     string
	Port          int
	Config        ServerConfig
	cancel        context.CancelFunc
	done          chan error
	gormDB        *gorm.DB
	serverProcess *exec.Cmd // For binary mode
}

// StartServer creates and starts a new server instance on the test database.
// This supports both inline and binary modes based on how the test suite was started.
func StartServer(tc *TestContext, cfg ServerConfig) (*ServerInstance, error) {
	if tc.InlineMode {
		return startInlineServerInstance(tc.DatabaseURL, cfg)
	}
	return startBinaryServerInstance(tc.BinaryPath, tc.DatabaseURL, cfg)
}

// startInlineServerInstance starts an in-process server
func startInlineServerInstance(dbURL string, cfg ServerConfig) (*ServerInstance, error) {
	// Allocate a unique port
	port := int(atomic.AddInt32(&portCounter, 1))

	appConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	appConfig.MaxUploadBytes = cfg.MaxUploadBytes

	// Create DB connection for this server instance
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dbURL,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := server.NewServer(
		appConfig,
		enricher.Default(),
		archivegorm.NewStore(db),
		endpoints.EmbeddedStatic(),
		nil,
		"127.0.0.1",
		strconv.Itoa(port),
	)
	endpoints.RegisterAll(s)

	ctx, cancel := context.WithCancel(context.Background())

	instance := &ServerInstance{
		Server:    s,
		ServerURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		Port:      port,
		Config:    cfg,
		cancel:    cancel,
		done:      make(chan error, 1),
		gormDB:    db,
	}

	// Start server in background
	go func() {
		instance.done <- s.Run(ctx)
	}()

	// Wait for server to be ready
	if err := waitForServer(instance.ServerURL, 10*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return instance, nil
}

// startBinaryServerInstance starts a server using the cabrillo binary
func startBinaryServerInstance(binaryPath, dbURL string, cfg ServerConfig) (*ServerInstance, error) {
	// Allocate a unique port
	port := int(atomic.AddInt32(&portCounter, 1))
	portStr := strconv.Itoa(port)

	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "serve", "--release", "--no-migrate", "-b", "127.0.0.1", "-p", portStr)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"CABRILLO_MAX_UPLOAD_BYTES="+strconv.FormatInt(cfg.MaxUploadBytes, 10),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	instance := &ServerInstance{
		ServerURL:     fmt.Sprintf("http://127.0.0.1:%d", port),
		Port:          port,
		Config:        cfg,
		cancel:        cancel,
		serverProcess: cmd,
	}

	// Wait for server to be ready
	if err := waitForServer(instance.ServerURL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return instance, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	if si.cancel != nil {
		si.cancel()
	}
	if si.done != nil {
		<-si.done
	}
	if si.gormDB != nil {
		if sqlDB, err := si.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if si.serverProcess != nil && si.serverProcess.Process != nil {
		_ = si.serverProcess.Process.Kill()
		_ = si.serverProcess.Wait()
	}
}
