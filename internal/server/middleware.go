package server

import (
	"net/http"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
	"git.home.luguber.info/inful/informer/internal/logfields"
)

// responseWriter captures status codes for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// withLogging logs method, path, status, duration, and remote addr for every
// request, and recovers handler panics into structured 500 responses.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				s.opts.Logger.Error("HTTP handler panic",
					"panic", rec,
					logfields.Path(r.URL.Path),
					logfields.Method(r.Method))
				s.adapter.WriteErrorResponse(wrapped, errors.New(errors.CategoryInternal, errors.SeverityError, "internal server error"))
			}
			s.opts.Logger.Info("HTTP request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				logfields.Status(wrapped.statusCode),
				logfields.DurationMS(float64(time.Since(start).Milliseconds())),
				logfields.RemoteAddr(r.RemoteAddr))
		}()

		next.ServeHTTP(wrapped, r)
	})
}

// instrument wraps an API handler with per-route metrics.
func (s *Server) instrument(route string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		fn(wrapped, r)
		s.opts.Recorder.ObserveRequestDuration(route, wrapped.statusCode, time.Since(start))
	})
}
