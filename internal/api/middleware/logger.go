package middleware

import (
	"net/http"
	"time"

	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// responseWriter records the status and byte count of a response, plus
// any extra fields a handler attaches via AddLogField.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
	fields     map[string]interface{}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// AddLogField attaches a key/value pair to the access log line for the
// current request. No-op when w is not the logging wrapper.
func AddLogField(w http.ResponseWriter, key string, value interface{}) {
	if rw, ok := w.(*responseWriter); ok {
		rw.fields[key] = value
	}
}

// Logger emits one structured access log line per request.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				fields:         make(map[string]interface{}),
			}

			next.ServeHTTP(rw, r)

			fields := map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"query":      r.URL.RawQuery,
				"status":     rw.statusCode,
				"duration":   time.Since(start).Milliseconds(),
				"bytes":      rw.written,
				"ip":         r.RemoteAddr,
				"user_agent": r.UserAgent(),
				"request_id": GetRequestID(r),
			}
			for k, v := range rw.fields {
				fields[k] = v
			}

			log.WithFields(fields).Info("HTTP request")
		}
		return http.HandlerFunc(fn)
	}
}
