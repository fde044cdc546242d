package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	commonhttp "github.com/AlibekovAA/seraas-authentication/internal/common/http"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	recorddomain "github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	"github.com/AlibekovAA/seraas-authentication/internal/record/service"
)

// sendRequest accepts both the current field names and the legacy
// param-prefixed ones.
type sendRequest struct {
	FileName               string          `json:"fileName"`
	EmotionsAvailable      []string        `json:"emotionsAvailable"`
	PeriodicQueryInterval  *int            `json:"periodicQueryInterval"`
	ParamEmotionsAvailable []string        `json:"paramEmotionsAvailable"`
	ParamPeriodicQuery     *int            `json:"paramPeriodicQuery"`
	Output                 json.RawMessage `json:"output"`
}

func (r sendRequest) toInput() service.SendInput {
	in := service.SendInput{
		FileName:              r.FileName,
		EmotionsAvailable:     r.EmotionsAvailable,
		PeriodicQueryInterval: r.PeriodicQueryInterval,
		Output:                r.Output,
	}
	if len(in.EmotionsAvailable) == 0 {
		in.EmotionsAvailable = r.ParamEmotionsAvailable
	}
	if in.PeriodicQueryInterval == nil {
		in.PeriodicQueryInterval = r.ParamPeriodicQuery
	}
	return in
}

type flushRequest struct {
	SecretKey string `json:"secretKey"`
}

type summaryResponse struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	FileName              string    `json:"fileName"`
	DateCreated           time.Time `json:"dateCreated"`
	EmotionsAvailable     []string  `json:"emotionsAvailable"`
	PeriodicQueryInterval int       `json:"periodicQueryInterval"`
}

type recordResponse struct {
	summaryResponse
	Output json.RawMessage `json:"output"`
}

type flushResponse struct {
	RemovedCount int64 `json:"removedCount"`
}

type Handler struct {
	records *service.RecordService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(records *service.RecordService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = constants.DefaultRequestTimeout
	}
	return &Handler{
		records: records,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
		timeout: requestTimeout,
	}
}

func (h *Handler) Mount(r chi.Router) {
	r.Post("/authentication/flush", h.flush)
	r.Post("/authentication/data/{userId}", h.send)
	r.Get("/authentication/data/{userId}", h.list)
	r.Get("/authentication/data/{userId}/{queryId}", h.load)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	userID, ok := commonhttp.PathParam(w, r, "userId")
	if !ok {
		return
	}

	var req sendRequest
	if !commonhttp.DecodeOrReject(w, r, &req, h.log, "record_send") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.records.Send(ctx, userID, req.toInput())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := commonhttp.PathParam(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ids, err := h.records.List(ctx, userID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	userID, ok := commonhttp.PathParam(w, r, "userId")
	if !ok {
		return
	}
	queryID, ok := commonhttp.PathParam(w, r, "queryId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	record, err := h.records.Load(ctx, userID, queryID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, recordResponse{
		summaryResponse: toSummaryResponse(record.Summary()),
		Output:          record.Output,
	})
}

func (h *Handler) flush(w http.ResponseWriter, r *http.Request) {
	var req flushRequest
	if !commonhttp.DecodeOrReject(w, r, &req, h.log, "flush") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	removed, err := h.records.Flush(ctx, req.SecretKey)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, flushResponse{RemovedCount: removed})
}

func toSummaryResponse(s recorddomain.Summary) summaryResponse {
	return summaryResponse{
		ID:                    string(s.ID),
		UserID:                string(s.UserID),
		FileName:              s.FileName,
		DateCreated:           s.DateCreated,
		EmotionsAvailable:     s.EmotionsAvailable,
		PeriodicQueryInterval: s.PeriodicQueryInterval,
	}
}
