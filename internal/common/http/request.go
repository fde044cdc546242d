package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

// DecodeOrReject decodes the JSON body into v. On failure it writes the
// error response itself and returns false.
func DecodeOrReject(w http.ResponseWriter, r *http.Request, v any, log *logger.Logger, op string) bool {
	err := DecodeJSON(r, v)
	if err == nil {
		return true
	}

	traceID := TraceIDFromContext(r.Context())
	if IsBodyTooLarge(err) {
		WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large", nil, traceID)
		return false
	}

	log.WithFields(r.Context(), logger.Fields{"action": op + "_invalid_json"}).Warnf("%s failed: invalid json: %v", op, err)
	WriteErrorEnvelope(w, http.StatusBadRequest, CodeInvalidJSON, "invalid json", nil, traceID)
	return false
}

// PathParam returns a URL parameter. An empty segment is treated as an
// unknown route: the 404 is written and ok is false.
func PathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		NotFound(w, r)
		return "", false
	}
	return value, true
}
