// Package server provides the HTTP server for the Cabrillo log toolkit.
//
// The server uses gorilla/mux for routing, logs requests in Apache combined
// format through gorilla/handlers and answers CORS requests from any origin
// unless cors_allowed_origins is configured.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, table, archiveStore, staticFS, logger, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Config: server configuration
//   - Table: callsign to DXCC entity table
//   - Archive: storage for uploaded logs
//   - Static: file system holding index.html and its assets
//   - Router: HTTP request router
//
// # Endpoints
//
// Endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
package server
