package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inotecloud/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.Any("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/panic", func(*gin.Context) { panic("boom") })
	return router
}

func TestCORSMiddleware(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}

	tests := []struct {
		name         string
		strict       bool
		method       string
		origin       string
		expectedCode int
		wantOrigin   string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "http://localhost:3000", expectedCode: http.StatusOK, wantOrigin: "http://localhost:3000"},
		{name: "unknown origin passes when lenient", method: http.MethodGet, origin: "http://evil.test", expectedCode: http.StatusOK, wantOrigin: "http://evil.test"},
		{name: "unknown origin rejected when strict", strict: true, method: http.MethodGet, origin: "http://evil.test", expectedCode: http.StatusForbidden},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", expectedCode: http.StatusNoContent, wantOrigin: "http://localhost:3000"},
		{name: "no origin", method: http.MethodGet, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.Strict = tt.strict
			router := okRouter(CORSMiddleware(c))

			req := httptest.NewRequest(tt.method, "/ok", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedCode != http.StatusForbidden {
				assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), HeaderExpiringSoon)
			}
		})
	}
}

func TestRequestTracingMiddleware(t *testing.T) {
	router := okRouter(RequestTracingMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	incoming := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "not a uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not a uuid", w.Header().Get(HeaderRequestID))
}

func TestRequestSizeLimiter(t *testing.T) {
	router := okRouter(RequestSizeLimiter(16))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ok", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ok", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := okRouter(EnhancedRecoveryMiddleware(), RequestLogger(), MetricsMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
