package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/seraas-authentication/internal/auth/service"
	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	commonhttp "github.com/AlibekovAA/seraas-authentication/internal/common/http"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"dateCreated"`
	LastUsed    time.Time `json:"lastUsed"`
}

type validateResponse struct {
	UserExists bool `json:"userExists"`
}

type Handler struct {
	auth    *service.AuthService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = constants.DefaultRequestTimeout
	}
	return &Handler{
		auth:    auth,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
		timeout: requestTimeout,
	}
}

func (h *Handler) Mount(r chi.Router) {
	r.Post("/authentication/register", h.register)
	r.Post("/authentication/login", h.login)
	r.Get("/authentication/validate/{userId}", h.validateUser)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !commonhttp.DecodeOrReject(w, r, &req, h.log, "register") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.auth.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !commonhttp.DecodeOrReject(w, r, &req, h.log, "login") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) validateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := commonhttp.PathParam(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	exists, err := h.auth.ValidateUserID(ctx, userID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, validateResponse{UserExists: exists})
}

func toUserResponse(u userdomain.Summary) userResponse {
	return userResponse{
		ID:          string(u.ID),
		Name:        u.Name,
		DateCreated: u.DateCreated,
		LastUsed:    u.LastUsed,
	}
}
