package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustabee/honey-marketplace/internal/identity/application"
	"github.com/trustabee/honey-marketplace/internal/identity/domain"
	"github.com/trustabee/honey-marketplace/pkg/auth"
	"github.com/trustabee/honey-marketplace/pkg/httpx"
)

type Handler struct {
	log      *slog.Logger
	service  *application.Service
	validate *validator.Validate
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, validate *validator.Validate) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate,
		tracer:   otel.Tracer("identity-http"),
	}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerReq struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=farmer client"`
}

// Mount registers the public auth routes on r and the session routes behind
// authn.
func (h *Handler) Mount(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/register", h.register)
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/auth/logout", h.logout)
		r.Get("/me", h.me)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login")
	defer span.End()

	var req loginReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	res, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Register")
	defer span.End()

	var req registerReq
	if !httpx.Decode(w, r, h.validate, &req) {
		return
	}
	res, err := h.service.Register(ctx, application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		h.fail(w, span, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Logout")
	defer span.End()

	p, _ := auth.PrincipalFrom(ctx)
	if err := h.service.Logout(ctx, p); err != nil {
		h.fail(w, span, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())
	u, err := h.service.Me(r.Context(), p.UserID)
	if err != nil {
		h.fail(w, trace.SpanFromContext(r.Context()), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) fail(w http.ResponseWriter, span trace.Span, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, application.ErrInvalidCredentials.Error())
	case errors.Is(err, application.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, application.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.log.Error("identity request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
