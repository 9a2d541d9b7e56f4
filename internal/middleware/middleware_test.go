package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdminJWTRoundTrip(t *testing.T) {
	token, exp, err := GenerateAdminToken("s3cret", "admin", time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	h := AdminJWTAuth("s3cret")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin/source", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/source", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/source", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, serve(AdminJWTAuth("other")(okHandler), req).Code)
}

func TestAdminJWTExpired(t *testing.T) {
	token, _, err := GenerateAdminToken("s3cret", "admin", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin/source", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, serve(AdminJWTAuth("s3cret")(okHandler), req).Code)
}

func TestAdminJWTNotConfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/source", nil)
	assert.Equal(t, http.StatusForbidden, serve(AdminJWTAuth("")(okHandler), req).Code)
	_, _, err := GenerateAdminToken("", "admin", time.Now(), time.Hour)
	assert.Error(t, err)
}

func TestAPIKey(t *testing.T) {
	h := APIKey("k1")(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/wells", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)

	req.Header.Set("X-API-Key", "k1")
	assert.Equal(t, http.StatusOK, serve(h, req).Code)

	open := APIKey("")(okHandler)
	assert.Equal(t, http.StatusOK, serve(open, httptest.NewRequest(http.MethodGet, "/api/wells", nil)).Code)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := RequestID(AccessLog(zap.New(core))(inner))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, int64(http.StatusTeapot), entry.ContextMap()["status"])
	assert.Equal(t, seen, entry.ContextMap()["request_id"])
}

func TestCORSPreflight(t *testing.T) {
	rec := serve(CORS(okHandler), httptest.NewRequest(http.MethodOptions, "/api/callback", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
