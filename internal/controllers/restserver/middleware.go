package restserver

import (
	"net/http"
	"time"

	"github.com/chrissnell/climateapi/internal/database"
	"github.com/chrissnell/climateapi/internal/log"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request ID on responses
const RequestIDHeader = "X-Request-ID"

// SQLDebugHeader turns on SQL statement logging for a single request when set to "1"
const SQLDebugHeader = "Climate-Debug"

// statusRecorder captures the status code and body size written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// requestLogMiddleware tags each request with an ID and logs it once served
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.LogHTTPRequest(log.HTTPLogEntry{
			RequestID:  requestID,
			Method:     req.Method,
			Path:       req.URL.Path,
			Status:     rec.status,
			Duration:   time.Since(start),
			Size:       rec.size,
			RemoteAddr: req.RemoteAddr,
			UserAgent:  req.UserAgent(),
		})
	})
}

// sqlDebugMiddleware marks the request context for SQL logging when the debug header is set
func sqlDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get(SQLDebugHeader) == "1" {
			req = req.WithContext(database.WithSQLDebug(req.Context()))
		}
		next.ServeHTTP(w, req)
	})
}
