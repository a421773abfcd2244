package endpoints

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/report"
	"github.com/kosciej/cabrillo-log/pkg/server"
	"github.com/kosciej/cabrillo-log/pkg/stats"
)

// RegisterStatsEndpoints registers POST /stats and POST /report
func RegisterStatsEndpoints(s *server.Server) {
	maxBytes := maxUploadBytes(s)
	s.Router.HandleFunc("/stats", handleStats(s.Table, maxBytes, s.Logger)).Methods("POST")
	s.Router.HandleFunc("/report", handleReport(s.Table, maxBytes, s.Logger)).Methods("POST")
}

// summarize parses an uploaded log and computes its statistics. It writes
// the error response itself and returns nil on failure.
func summarize(w http.ResponseWriter, r *http.Request, table *enricher.Table, maxBytes int64, logger *zap.Logger) (*cabrillo.Log, *stats.Summary) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, nil
	}

	content, err := readUpload(w, r, maxBytes)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, nil
	}

	log, err := cabrillo.Parse(content)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, nil
	}

	qs, err := stats.New(r.Context(), log.QSOs, table)
	if err != nil {
		logger.Error("failed to build statistics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to build statistics")
		return nil, nil
	}
	defer qs.Close()

	sum, err := qs.Summary(r.Context(), filter)
	if err != nil {
		logger.Error("failed to query statistics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to query statistics")
		return nil, nil
	}
	return log, sum
}

func handleStats(table *enricher.Table, maxBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sum := summarize(w, r, table, maxBytes, logger)
		if sum == nil {
			return
		}
		respondWithJSON(w, http.StatusOK, sum)
	}
}

func handleReport(table *enricher.Table, maxBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, sum := summarize(w, r, table, maxBytes, logger)
		if sum == nil {
			return
		}

		page, err := report.HTML(reportTitle(log), sum)
		if err != nil {
			logger.Error("failed to render report", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to render report")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func reportTitle(log *cabrillo.Log) string {
	title := strings.TrimSpace(log.Callsign() + " " + log.Contest())
	if title == "" {
		return "Cabrillo log report"
	}
	return title
}
