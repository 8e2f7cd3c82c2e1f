package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func serveRecovered(logger *slog.Logger, h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/buckets/finished/drop", http.NoBody)
	middleware.Recovery(logger)(h).ServeHTTP(rec, req)
	return rec
}

func TestRecovery_PassesThrough(t *testing.T) {
	t.Parallel()

	rec := serveRecovered(discardLogger(), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRecovery_PanicBecomesProblem(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]any{"string": "boom", "int": 42, "error": assert.AnError} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := serveRecovered(discardLogger(), func(http.ResponseWriter, *http.Request) {
				panic(value)
			})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "Internal Server Error", body["title"])
			assert.Equal(t, "internal server error", body["detail"])
		})
	}
}

func TestRecovery_LogsPanicWithStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	serveRecovered(testLogger(&buf), func(http.ResponseWriter, *http.Request) {
		panic("listener exploded")
	})

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "listener exploded")
	assert.Contains(t, out, "goroutine")
	assert.Contains(t, out, "/api/v1/buckets/finished/drop")
}

func TestRecovery_KeepsStatusWhenHeadersWritten(t *testing.T) {
	t.Parallel()

	rec := serveRecovered(discardLogger(), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late panic")
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRecovery_PanicInsideEventReleasesLoop(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	handler := func(w http.ResponseWriter, r *http.Request) {
		_ = loop.Do(r.Context(), func() { panic("listener exploded") })
		w.WriteHeader(http.StatusOK)
	}

	first := serveRecovered(discardLogger(), handler)
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	rec := serveRecovered(discardLogger(), func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, loop.Do(r.Context(), func() {}))
		w.WriteHeader(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecovery_PanicBehindTimeout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("listener exploded")
	})
	h := middleware.Recovery(testLogger(&buf))(middleware.Timeout(time.Second)(panicking))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/buckets/finished/drop", http.NoBody)
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["detail"])

	out := buf.String()
	assert.Contains(t, out, "listener exploded")
	assert.Contains(t, out, "recovery_test.go")
}

func TestRecovery_PanicBehindTimeoutLeavesNoPartialBody(t *testing.T) {
	t.Parallel()

	halfWritten := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"partial":`))
		panic("boom")
	})
	h := middleware.Recovery(discardLogger())(middleware.Timeout(time.Second)(halfWritten))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", http.NoBody)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "partial")
}
