package metrics

import (
	"net/http"
	"time"

	"github.com/vortex-fintech/go-iban/foundation/logger"
)

// withLog logs every request at a level derived from the status code.
// Successful scrapes are logged at debug to keep the log quiet.
func withLog(h http.Handler, path string, log logger.LoggerInterface) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		h.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		kv := []any{"path", path, "method", r.Method, "status", sw.status, "duration", time.Since(start)}
		switch {
		case sw.status < 400:
			log.Debugw("ops request", kv...)
		case sw.status < 500:
			log.Warnw("ops request", kv...)
		default:
			log.Errorw("ops request", kv...)
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(p)
}

func (s *statusWriter) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusWriter) Unwrap() http.ResponseWriter { return s.ResponseWriter }
