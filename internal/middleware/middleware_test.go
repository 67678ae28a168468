package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	t.Run("X-Forwarded-For takes the first hop", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
		assert.Equal(t, "203.0.113.7", ClientIP(r))
	})

	t.Run("X-Real-IP used when no forwarded header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Real-IP", "198.51.100.4")
		assert.Equal(t, "198.51.100.4", ClientIP(r))
	})

	t.Run("falls back to the socket address", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.10:54321"
		assert.Equal(t, "192.0.2.10", ClientIP(r))
	})

	t.Run("forwarded header wins over everything", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7")
		r.Header.Set("X-Real-IP", "198.51.100.4")
		r.RemoteAddr = "192.0.2.10:54321"
		assert.Equal(t, "203.0.113.7", ClientIP(r))
	})
}

func TestSetRateLimitHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SetRateLimitHeaders(w, 15, 7, time.Hour)

	assert.Equal(t, "15", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "7", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))

	// remaining never goes negative
	w = httptest.NewRecorder()
	SetRateLimitHeaders(w, 15, -3, time.Hour)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestValidateResumeFilename(t *testing.T) {
	for _, name := range []string{"cv.pdf", "resume.DOCX", "me.doc", "plain.txt"} {
		assert.NoError(t, ValidateResumeFilename(name), name)
	}
	for _, name := range []string{"", "script.exe", "archive.zip", "noext"} {
		assert.Error(t, ValidateResumeFilename(name), name)
	}
}

func TestValidateFileSize(t *testing.T) {
	assert.NoError(t, ValidateFileSize(1024, 10<<20))
	assert.Error(t, ValidateFileSize(0, 10<<20))
	assert.Error(t, ValidateFileSize(11<<20, 10<<20))
	// zero ceiling disables the upper bound
	assert.NoError(t, ValidateFileSize(11<<20, 0))
}

func TestValidateJobDescription(t *testing.T) {
	assert.Error(t, ValidateJobDescription(""))
	assert.Error(t, ValidateJobDescription("   "))
	assert.Error(t, ValidateJobDescription("too short"))

	long := "We are looking for a backend engineer with strong Go experience and database skills."
	assert.NoError(t, ValidateJobDescription(long))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("hello\x00 world"))
	assert.Equal(t, "tab\tand\nnewline", SanitizeString("tab\tand\nnewline"))
	assert.Equal(t, "trimmed", SanitizeString("  trimmed  "))
	assert.Equal(t, "bellless", SanitizeString("bell\x07less"))
}

func TestAdminAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminAuth("secret-key")(next)

	do := func(auth string) int {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
		if auth != "" {
			r.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("Bearer secret-key"))
	assert.Equal(t, http.StatusOK, do("secret-key"))
	assert.Equal(t, http.StatusUnauthorized, do("Bearer wrong"))
	assert.Equal(t, http.StatusUnauthorized, do(""))

	// empty configured key disables the endpoint entirely
	disabled := AdminAuth("")(next)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	r.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	disabled.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestValidatePagination(t *testing.T) {
	assert.Equal(t, 1, ValidatePage(0))
	assert.Equal(t, 1, ValidatePage(-5))
	assert.Equal(t, 3, ValidatePage(3))

	assert.Equal(t, 20, ValidatePageSize(0))
	assert.Equal(t, 100, ValidatePageSize(500))
	assert.Equal(t, 50, ValidatePageSize(50))
}
