package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(t *testing.T) (*chi.Mux, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(InjectLogger(zap.New(core)))
	r.Use(RequestLogger)
	r.Use(Recoverer)
	return r, logs
}

func TestRequestLoggerRecordsRoutePattern(t *testing.T) {
	r, logs := newObservedRouter(t)
	r.Get("/work/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug("inside handler")
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/work/items/abc", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("inside handler").Len())

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "/work/items/{id}", fields["route"])
	require.EqualValues(t, http.StatusNotFound, fields["status"])
	require.Equal(t, true, fields["htmx"])
	require.Equal(t, "GET", fields["method"])
}

func TestRecovererAnswers500(t *testing.T) {
	r, logs := newObservedRouter(t)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	require.Equal(t, zapcore.ErrorLevel, completed[0].Level)
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	require.NotNil(t, FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestNewLoggerAcceptsLevels(t *testing.T) {
	logger, err := NewLogger("debug", false)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("bogus", true)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
