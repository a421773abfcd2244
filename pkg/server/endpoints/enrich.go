package endpoints

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/kosciej/cabrillo-log/pkg/enricher"
	"github.com/kosciej/cabrillo-log/pkg/server"
)

// RegisterEnrichEndpoint registers GET /enrich/{callsign}
func RegisterEnrichEndpoint(s *server.Server) {
	s.Router.HandleFunc("/enrich/{callsign}", handleEnrich(s.Table)).Methods("GET")
}

func handleEnrich(table *enricher.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callsign, err := url.PathUnescape(mux.Vars(r)["callsign"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid callsign: "+err.Error())
			return
		}

		entity, ok := table.Lookup(callsign)
		if !ok {
			respondWithError(w, http.StatusNotFound, "unknown callsign: "+callsign)
			return
		}
		respondWithJSON(w, http.StatusOK, entity)
	}
}
