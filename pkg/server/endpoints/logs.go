package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

const defaultListLimit = 20

// RegisterLogsEndpoints registers the archive endpoints. Without an archive
// every route answers 503.
func RegisterLogsEndpoints(s *server.Server) {
	if s.Archive == nil {
		s.Router.HandleFunc("/logs", handleArchiveDisabled).Methods("GET")
		s.Router.HandleFunc("/logs/{id}", handleArchiveDisabled).Methods("GET", "DELETE")
		return
	}

	maxLimit := 100
	if s.Config != nil && s.Config.ArchiveListLimitMax > 0 {
		maxLimit = s.Config.ArchiveListLimitMax
	}

	s.Router.HandleFunc("/logs", handleListLogs(s.Archive, maxLimit, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/logs/{id}", handleGetLog(s.Archive, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/logs/{id}", handleDeleteLog(s.Archive, s.Logger)).Methods("DELETE")
}

func handleArchiveDisabled(w http.ResponseWriter, _ *http.Request) {
	respondWithError(w, http.StatusServiceUnavailable, "log archive is not configured")
}

func handleListLogs(store archive.Store, maxLimit int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				respondWithError(w, http.StatusBadRequest, "invalid limit: "+v)
				return
			}
			limit = n
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		subs, err := store.List(r.Context(), limit)
		if err != nil {
			logger.Error("failed to list logs", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to list logs")
			return
		}
		respondWithJSON(w, http.StatusOK, subs)
	}
}

func submissionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid log id: "+raw)
		return uuid.Nil, false
	}
	return id, true
}

func handleGetLog(store archive.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := submissionID(w, r)
		if !ok {
			return
		}

		sub, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, archive.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			logger.Error("failed to fetch log", zap.Stringer("id", id), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to fetch log")
			return
		}

		if r.URL.Query().Get("raw") != "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(sub.Content))
			return
		}
		respondWithJSON(w, http.StatusOK, sub)
	}
}

func handleDeleteLog(store archive.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := submissionID(w, r)
		if !ok {
			return
		}

		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, archive.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			logger.Error("failed to delete log", zap.Stringer("id", id), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to delete log")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
