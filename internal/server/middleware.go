package server

import (
	"mime"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
)

// statusRecorder captures the response code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with method, path, status and duration.
func RequestLogger(l *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			fn := l.Info
			if rec.status >= http.StatusInternalServerError {
				fn = l.Error
			} else if rec.status >= http.StatusBadRequest {
				fn = l.Warn
			}
			fn("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
		})
	}
}

// JSONContentType rejects POST bodies that declare a non-JSON content type.
//
// A missing header is accepted.
func JSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if ct := r.Header.Get("Content-Type"); ct != "" && !isJSON(ct) {
				sendError(w, r, nil, http.StatusUnsupportedMediaType, nil, "Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// isJSON reports whether contentType names application/json. Parameters and case are ignored.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// globalMiddleware wraps the whole router: app info headers, /ping, panic recovery,
// a concurrency throttle and a body size limit.
func globalMiddleware(l *log.Logger, version string) []Middleware {
	return []Middleware{
		rest.AppInfo("moodtunes", "desertthunder", version),
		rest.Ping,
		rest.Recoverer(lgr.Func(l.Errorf)),
		rest.Throttle(100),
		rest.SizeLimit(64 * 1024),
	}
}

// sendError writes {"error": msg} with code, logging err when l is set.
func sendError(w http.ResponseWriter, r *http.Request, l *log.Logger, code int, err error, msg string) {
	if l == nil {
		rest.SendErrorJSON(w, r, nil, code, err, msg)
		return
	}
	rest.SendErrorJSON(w, r, lgr.Func(l.Warnf), code, err, msg)
}
