package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/enricher"
)

func TestEnrich(t *testing.T) {
	s := NewTestServer(archive.NewMemoryStore())

	t.Run("known callsign", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/enrich/SP5TLS"))
		require.Equal(t, http.StatusOK, w.Code)

		var entity enricher.Entity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entity))
		assert.Equal(t, "Poland", entity.Country)
		assert.Equal(t, "EU", entity.Continent)
		assert.Equal(t, 15, entity.CQZone)
	})

	t.Run("exact entry with encoded slash", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/enrich/KH6%2FW1AW"))
		require.Equal(t, http.StatusOK, w.Code)

		var entity enricher.Entity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entity))
		assert.Equal(t, "United States", entity.Country)
		assert.Equal(t, 31, entity.CQZone)
		assert.Equal(t, 61, entity.ITUZone)
	})

	t.Run("unknown callsign", func(t *testing.T) {
		w := serve(s.Router, httptestRequest("GET", "/enrich/QQ1ZZ"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "unknown callsign")
	})
}
