package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/markers"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// SubmissionHeader carries the archive ID of an uploaded log
const SubmissionHeader = "X-Submission-Id"

// RegisterUploadEndpoint registers POST /upload
func RegisterUploadEndpoint(s *server.Server) {
	s.Router.HandleFunc("/upload", handleUpload(s.Table, s.Archive, maxUploadBytes(s), s.Logger)).Methods("POST")
}

func handleUpload(table *enricher.Table, store archive.Store, maxBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readUpload(w, r, maxBytes)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		log, err := cabrillo.Parse(content)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if store != nil {
			sub := archive.NewSubmission(content, log)
			if err := store.Save(r.Context(), sub); err != nil {
				logger.Warn("failed to archive log", zap.String("callsign", sub.Callsign), zap.Error(err))
			} else {
				w.Header().Set(SubmissionHeader, sub.ID.String())
			}
		}

		respondWithJSON(w, http.StatusOK, markers.Build(log, table))
	}
}
