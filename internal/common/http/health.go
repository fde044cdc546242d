package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadinessHandler reports 503 while the database does not answer a ping.
func ReadinessHandler(log *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.WithFields(r.Context(), logger.Fields{"action": "readiness_failed"}).Warnf("database not ready: %v", err)
			WriteErrorEnvelope(w, http.StatusServiceUnavailable, CodeUnavailable, "database unavailable", nil, TraceIDFromContext(r.Context()))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
