package server

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/config"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/server/middleware"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests
const ShutdownTimeout = 10 * time.Second

type Server struct {
	Config  *config.Config
	Table   *enricher.Table
	Archive archive.Store
	Static  fs.FS
	Logger  *zap.Logger
	Router  *mux.Router
	srv     *http.Server
}

func NewServer(
	cfg *config.Config,
	table *enricher.Table,
	store archive.Store,
	static fs.FS,
	logger *zap.Logger,
	host string,
	port string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter().UseEncodedPath()
	router.Use(middleware.NewRecoverer(logger).Middleware)

	s := &Server{
		Config:  cfg,
		Table:   table,
		Archive: store,
		Static:  static,
		Logger:  logger,
		Router:  router,
	}
	s.srv = &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, s.cors(router)),
		Addr:    net.JoinHostPort(host, port),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return s
}

func (s *Server) cors(h http.Handler) http.Handler {
	origins := []string{"*"}
	if s.Config != nil && len(s.Config.CORSAllowedOrigins) > 0 {
		origins = s.Config.CORSAllowedOrigins
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
	)(h)
}

// Handler returns the full handler chain, including request logging and CORS
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start listens and serves until the server is shut down
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// Listen errors such as a port already in use are returned.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Version is reported by the status endpoint. Release builds set it with
// -ldflags "-X github.com/kosciej/cabrillo-log/pkg/server.Version=..."
var Version = "0.1.0"
