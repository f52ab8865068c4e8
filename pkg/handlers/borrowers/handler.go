package borrowers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/handlers/respond"
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/server/middleware"
	"github.com/lib-tools/library-atlas/pkg/services/accounts"
)

type Handler struct {
	accounts accounts.Service
}

func NewHandler(accounts accounts.Service) *Handler {
	return &Handler{accounts: accounts}
}

// ListBorrowers handles GET /api/borrowers.
func (h *Handler) ListBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.accounts.ListBorrowers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	response := make([]api.Borrower, 0, len(borrowers))
	for _, b := range borrowers {
		response = append(response, adapters.MapBorrowerDomainToApi(b))
	}
	respond.JSON(w, r, http.StatusOK, response)
}

// GetBorrower handles GET /api/borrowers/{id}.
func (h *Handler) GetBorrower(w http.ResponseWriter, r *http.Request) {
	borrower, err := h.accounts.GetBorrower(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBorrowerDomainToApi(borrower))
}

// GetProfile handles GET /api/borrowers/profile for the authenticated
// borrower.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.BorrowerFromContext(r.Context())
	borrower, err := h.accounts.GetBorrower(r.Context(), caller.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBorrowerDomainToApi(borrower))
}

// UpdateProfile handles PUT /api/borrowers/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateProfileRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	caller, _ := middleware.BorrowerFromContext(r.Context())
	borrower, err := h.accounts.UpdateProfile(r.Context(), caller.ID, accounts.ProfileUpdate{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBorrowerDomainToApi(borrower))
}

// DeleteBorrower handles DELETE /api/borrowers/{id}.
func (h *Handler) DeleteBorrower(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.RemoveBorrower(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
