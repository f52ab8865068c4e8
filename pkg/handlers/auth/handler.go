package auth

import (
	"net/http"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/handlers/respond"
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/services/auth"
)

type Handler struct {
	service auth.Service
}

func NewHandler(service auth.Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	borrower, token, err := h.service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, api.AuthResponse{
		Borrower: adapters.MapBorrowerDomainToApi(borrower),
		Token:    token,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	borrower, token, err := h.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, api.AuthResponse{
		Borrower: adapters.MapBorrowerDomainToApi(borrower),
		Token:    token,
	})
}
