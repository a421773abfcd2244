package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers GET /status
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.Archive, s.Logger)).Methods("GET")
}

func handleStatus(store archive.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.CheckConnectivity(r.Context()); err != nil {
				logger.Warn("archive connectivity check failed", zap.Error(err))
				respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
					Status:  "error",
					Version: server.Version,
					Error:   "archive storage connectivity check failed",
				})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: server.Version,
		})
	}
}
