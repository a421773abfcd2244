package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/kosciej/cabrillo-log/pkg/server"
	"github.com/kosciej/cabrillo-log/pkg/stats"
)

// LogFileField is the multipart field carrying the uploaded log
const LogFileField = "logfile"

const defaultMaxUploadBytes = 10 << 20

var (
	errMissingLogFile = errors.New("missing " + LogFileField + " field")
	errInvalidUTF8    = errors.New("log file is not valid UTF-8")
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func maxUploadBytes(s *server.Server) int64 {
	if s.Config != nil && s.Config.MaxUploadBytes > 0 {
		return s.Config.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

// readUpload returns the content of the logfile field of a multipart form
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, _, err := r.FormFile(LogFileField)
	if err != nil {
		return "", errMissingLogFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", LogFileField, err)
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

// parseFilter builds a stats filter from query parameters
func parseFilter(r *http.Request) (*stats.Filter, error) {
	q := r.URL.Query()
	f := &stats.Filter{
		Band:     q.Get("band"),
		BandName: q.Get("band_name"),
		Country:  q.Get("country"),
		Mode:     q.Get("mode"),
	}

	for name, dst := range map[string]*int{"cq_zone": &f.CQZone, "itu_zone": &f.ITUZone} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", name, v)
			}
			*dst = n
		}
	}

	for name, dst := range map[string]**time.Time{"start": &f.Start, "end": &f.End} {
		if v := q.Get(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", name, v)
			}
			*dst = &t
		}
	}

	return f, nil
}
