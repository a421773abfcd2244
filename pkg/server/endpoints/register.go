package endpoints

import (
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterUploadEndpoint(srv)
	RegisterStatsEndpoints(srv)
	RegisterValidateEndpoint(srv)
	RegisterEnrichEndpoint(srv)
	RegisterLogsEndpoints(srv)
	RegisterStatusEndpoints(srv)

	// Static files
	RegisterStaticFiles(srv)
}
