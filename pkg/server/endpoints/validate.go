package endpoints

import (
	"net/http"

	"github.com/kosciej/cabrillo-log/pkg/cabrillo"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// ValidationResponse is returned by POST /validate
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	QSOs   int      `json:"qsos"`
	Errors []string `json:"errors"`
}

// RegisterValidateEndpoint registers POST /validate
func RegisterValidateEndpoint(s *server.Server) {
	s.Router.HandleFunc("/validate", handleValidate(maxUploadBytes(s))).Methods("POST")
}

func handleValidate(maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := readUpload(w, r, maxBytes)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := ValidationResponse{Errors: []string{}}

		log, err := cabrillo.Parse(content)
		if err != nil {
			resp.Errors = append(resp.Errors, err.Error())
			respondWithJSON(w, http.StatusOK, resp)
			return
		}

		resp.QSOs = len(log.QSOs)
		for _, verr := range log.ValidateAll() {
			resp.Errors = append(resp.Errors, verr.Error())
		}
		resp.Valid = len(resp.Errors) == 0

		respondWithJSON(w, http.StatusOK, resp)
	}
}
