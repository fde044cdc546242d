package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/httpmetrics"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

type RouterOptions struct {
	ServiceName    string
	AllowedOrigins []string
	MaxRequestSize int64
}

// NewRouter returns a chi router with the shared middleware chain installed
// and JSON responses for unknown routes and methods.
func NewRouter(log *logger.Logger, opts RouterOptions) chi.Router {
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSize
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(
		SecurityHeadersMiddleware,
		TraceIDMiddleware,
		RecoveryMiddleware(log),
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}),
		MaxRequestSizeMiddleware(opts.MaxRequestSize),
		httpmetrics.New(opts.ServiceName).Wrap,
	)

	r.NotFound(NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteErrorEnvelope(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil, TraceIDFromContext(req.Context()))
	})

	return r
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteErrorEnvelope(w, http.StatusNotFound, CodeNotFound, "route not found", nil, TraceIDFromContext(r.Context()))
}
