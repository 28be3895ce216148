// internal/server/middleware.go

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"mybank/pkg/log"
)

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	// Default to 200 OK if WriteHeader is not called.
	return &responseRecorder{w, http.StatusOK}
}

// WriteHeader captures the status code before calling the original WriteHeader.
func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

// loggingMiddleware 記錄每個請求，並把帶 request_id 的 logger 放進 context。
// 同時累計 prometheus 請求數。
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lg := s.logger.WithKV("request_id", uuid.NewString())
		rr := newResponseRecorder(w)

		next.ServeHTTP(rr, r.WithContext(log.SetContextLogger(r.Context(), lg)))

		s.metrics.ObserveRequest(r.Method, strconv.Itoa(rr.statusCode))
		lg.Info("processed request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"status", rr.statusCode,
			"user_agent", r.UserAgent(),
		)
	})
}

// serializeMiddleware 讓請求逐一進入 handler。
func (s *Server) serializeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware 只套用在 JSON API。
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	if len(s.corsOrigins) == 0 {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}).Handler(next)
}
