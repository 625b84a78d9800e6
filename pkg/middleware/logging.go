package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type tagKey struct{}

// requestTag carries fields resolved deeper in the handler chain back out
// to the access log entry, like the caller's role once the access control
// gate has validated the token.
type requestTag struct {
	role string
}

// TagRole records the caller's resolved role on the current request.
// No-op when the request is not wrapped by RequestLogger.
func TagRole(ctx context.Context, role string) {
	if tag, ok := ctx.Value(tagKey{}).(*requestTag); ok {
		tag.role = role
	}
}

// RequestLogger returns middleware that writes one access log entry per
// request. Normal traffic logs at DEBUG, server errors at WARN; health
// probes are not logged. Pass nil logger to disable logging.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			tag := &requestTag{}
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), tagKey{}, tag)))

			level := zapcore.DebugLevel
			if wrapped.statusCode >= http.StatusInternalServerError {
				level = zapcore.WarnLevel
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Int("bytes", wrapped.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			}
			if tag.role != "" {
				fields = append(fields, zap.String("role", tag.role))
			}
			logger.Log(level, "HTTP request", fields...)
		})
	}
}

// responseWriter captures the status code and body size written by the
// handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}
