package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/xid"
)

const requestIDHeader = "X-Request-ID"

// loggingMiddleware 记录每个请求的方法、路径、状态码与耗时。
// 每个请求带一个 request id（沿用客户端传入的 X-Request-ID），并随 ctx 传给下游日志。
func loggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = xid.New().String()
			}
			w.Header().Set(requestIDHeader, reqID)
			l := logger.With("req", reqID)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(log.WithContext(r.Context(), l)))

			l.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"dur", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
