package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/archive"
	"github.com/kosciej/cabrillo-log/pkg/markers"
)

func TestUpload(t *testing.T) {
	t.Run("returns markers and archives the log", func(t *testing.T) {
		store := archive.NewMemoryStore()
		s := NewTestServer(store)

		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte(testLog)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got []markers.Marker
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Poland", got[0].Country)
		assert.Equal(t, []string{"SP5TLS"}, got[0].Callsigns)
		assert.Equal(t, "United States", got[1].Country)
		assert.Equal(t, []string{"N1MM", "W1AW"}, got[1].Callsigns)

		id := w.Header().Get(SubmissionHeader)
		require.NotEmpty(t, id)

		subs, err := store.List(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, id, subs[0].ID.String())
		assert.Equal(t, "N1MM", subs[0].Callsign)
		assert.Equal(t, 2, subs[0].QSOCount)
	})

	t.Run("archive failure does not fail the upload", func(t *testing.T) {
		store := &MockArchiveStore{}
		store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		s := NewTestServer(store)

		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte(testLog)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get(SubmissionHeader))
		store.AssertExpectations(t)
	})

	t.Run("archives through the database", func(t *testing.T) {
		s, mdb, err := NewMockTestServer()
		require.NoError(t, err)
		defer mdb.Close()
		mdb.ExpectSubmissionInsert()

		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte(testLog)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(SubmissionHeader))
		assert.NoError(t, mdb.VerifyExpectations())
	})

	t.Run("missing field", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		w := serve(s.Router, uploadRequest(t, "/upload", "other", []byte(testLog)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing logfile field")
	})

	t.Run("not multipart", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		req := uploadRequest(t, "/upload", LogFileField, []byte(testLog))
		req.Header.Set("Content-Type", "text/plain")
		w := serve(s.Router, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte{0xff, 0xfe, 'Q'}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UTF-8")
	})

	t.Run("unparseable log", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte("QSO: 14000 CW\n")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		big := strings.Repeat("# padding line\n", (2<<20)/15)
		w := serve(s.Router, uploadRequest(t, "/upload", LogFileField, []byte(big)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		s := NewTestServer(archive.NewMemoryStore())

		w := serve(s.Router, httptestRequest("GET", "/upload"))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
