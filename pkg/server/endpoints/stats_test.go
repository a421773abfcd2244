package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/stats"
)

func TestStats(t *testing.T) {
	s := NewTestServer(archive.NewMemoryStore())

	t.Run("summary of the whole log", func(t *testing.T) {
		w := serve(s.Router, uploadRequest(t, "/stats", LogFileField, []byte(testLog)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var sum stats.Summary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
		assert.EqualValues(t, 2, sum.Total)
		require.NotNil(t, sum.Intervals)
		assert.InDelta(t, 30.0, sum.Intervals.AvgMinutes, 0.001)
		assert.ElementsMatch(t, []stats.Count{{Name: "20m", Count: 1}, {Name: "40m", Count: 1}}, sum.PerBand)
		assert.ElementsMatch(t, []stats.Count{{Name: "CW", Count: 1}, {Name: "PH", Count: 1}}, sum.PerMode)
	})

	t.Run("filtered by mode", func(t *testing.T) {
		w := serve(s.Router, uploadRequest(t, "/stats?mode=CW", LogFileField, []byte(testLog)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var sum stats.Summary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
		assert.EqualValues(t, 1, sum.Total)
		assert.Nil(t, sum.Intervals)
	})

	t.Run("invalid zone filter", func(t *testing.T) {
		w := serve(s.Router, uploadRequest(t, "/stats?cq_zone=abc", LogFileField, []byte(testLog)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cq_zone")
	})

	t.Run("invalid time filter", func(t *testing.T) {
		w := serve(s.Router, uploadRequest(t, "/stats?start=yesterday", LogFileField, []byte(testLog)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		w := serve(s.Router, uploadRequest(t, "/stats", "file", []byte(testLog)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReport(t *testing.T) {
	s := NewTestServer(archive.NewMemoryStore())

	w := serve(s.Router, uploadRequest(t, "/report", LogFileField, []byte(testLog)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "N1MM CQ-WW-CW")
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "United States")
}

func TestReportTitle(t *testing.T) {
	s := NewTestServer(archive.NewMemoryStore())

	w := serve(s.Router, uploadRequest(t, "/report", LogFileField,
		[]byte("QSO: 14000 CW 2023-10-01 1200 N1MM 599 001 W1AW 599 001 0\n")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cabrillo log report")
}
