package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(requestLogging)
	r.Use(deps.Metrics.Middleware)
}

// requestLogging tags every request with an id, reusing one sent by the
// client, and logs it once it is answered.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		entry := log.WithFields(log.Fields{
			"requestId": requestId,
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    recorder.status,
			"duration":  time.Since(start).String(),
		})
		if recorder.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request handled")
		}
	})
}
