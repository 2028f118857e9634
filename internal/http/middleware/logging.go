package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request correlation ID in both directions
const RequestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logging logs one line per request. An incoming X-Request-ID is kept,
// otherwise a new one is generated; either way it is echoed on the response.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.New().String()
			}
			r.Header.Set(RequestIDHeader, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status_code", rw.statusCode),
				zap.Int64("response_size", rw.written),
				zap.Duration("duration", duration),
			}

			// Handlers see the user through the request they were given, so the
			// outer request only carries one when auth ran before this middleware
			if userCtx, ok := auth.FromContext(r.Context()); ok {
				fields = append(fields, zap.String("user_id", userCtx.UserID.String()))
			}

			msg := fmt.Sprintf("%s %-30s -> %3d (%s)",
				r.Method,
				r.URL.Path,
				rw.statusCode,
				duration.Truncate(time.Microsecond),
			)
			if rw.statusCode >= http.StatusInternalServerError {
				logger.Warn(msg, fields...)
				return
			}
			logger.Info(msg, fields...)
		})
	}
}
