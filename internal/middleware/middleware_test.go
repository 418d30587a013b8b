package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAccessLogCountsStatusClasses(t *testing.T) {
	var counter RequestCounter
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	AccessLog(&counter)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	AccessLog(&counter)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	AccessLog(&counter)(notFound).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	snap := counter.Snapshot()
	assert.Equal(t, uint64(2), snap[2])
	assert.Equal(t, uint64(1), snap[4])
	assert.Zero(t, snap[5])
}

func TestRecoverRendersXML(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cities", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "<message>Internal server error</message>")
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/cities", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	CORS(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cities", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminJWTAuthDisabledWithoutSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminJWTAuth("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cities", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminJWTAuth(t *testing.T) {
	const secret = "s3cret"
	guard := AdminJWTAuth(secret)(okHandler)

	call := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/cities", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		return rec
	}

	rec := call("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "<message>missing token</message>")

	assert.Equal(t, http.StatusUnauthorized, call("Bearer not-a-jwt").Code)

	wrong, _, err := GenerateAdminToken("other", "admin", time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+wrong).Code)

	expired, _, err := GenerateAdminToken(secret, "admin", time.Now().Add(-48*time.Hour), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+expired).Code)

	good, exp, err := GenerateAdminToken(secret, "admin", time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())
	assert.Equal(t, http.StatusOK, call("Bearer "+good).Code)
}
