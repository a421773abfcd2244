package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoverer(t *testing.T) {
	t.Run("passes through", func(t *testing.T) {
		handler := NewRecoverer(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("recovers and logs panics", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		handler := NewRecoverer(zap.New(core)).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

		entries := logs.FilterMessage("panic serving request").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "/stats", entries[0].ContextMap()["path"])
		}
	})

	t.Run("re-panics on ErrAbortHandler", func(t *testing.T) {
		handler := NewRecoverer(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		})
	})
}
