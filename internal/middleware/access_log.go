// internal/middleware/access_log.go
package middleware

import (
	"log"
	"net/http"
	"sync/atomic"
	"time"
)

// RequestCounter counts responses by status class (1xx..5xx).
type RequestCounter struct {
	classes [6]atomic.Uint64
}

func (c *RequestCounter) Observe(status int) {
	class := status / 100
	if class < 1 || class > 5 {
		class = 0
	}
	c.classes[class].Add(1)
}

// Snapshot returns counts indexed by class: [1] is 1xx, ..., [5] is 5xx,
// [0] is anything out of range.
func (c *RequestCounter) Snapshot() [6]uint64 {
	var out [6]uint64
	for i := range c.classes {
		out[i] = c.classes[i].Load()
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLog logs one line per request and feeds counter when non-nil.
func AccessLog(counter *RequestCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			if counter != nil {
				counter.Observe(rec.status)
			}
			log.Printf("[INFO] %s %s %d %dB %s rid=%s",
				r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start), RequestIDFrom(r.Context()))
		})
	}
}
