package endpoints

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testLog = `START-OF-LOG: 3.0
CALLSIGN: N1MM
CONTEST: CQ-WW-CW
QSO: 14000 CW 2023-10-01 1200 N1MM 599 001 W1AW 599 001 0
QSO: 7000 PH 2023-10-01 1230 N1MM 59 001 SP5TLS 59 001 0
END-OF-LOG: 3.0
`

// uploadRequest builds a multipart request carrying content in field
func uploadRequest(t *testing.T, target, field string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, "test.log")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
