package borrowing

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/handlers/respond"
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/server/middleware"
	"github.com/lib-tools/library-atlas/pkg/services/circulation"
)

type Handler struct {
	circulation circulation.Service
}

func NewHandler(circulation circulation.Service) *Handler {
	return &Handler{circulation: circulation}
}

// Checkout handles POST /api/borrowing/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body api.CheckoutRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	dueDate, err := time.Parse("2006-01-02", body.DueDate)
	if err != nil {
		respond.Error(w, r, domain.NewValidationError("due_date must use the 2006-01-02 form"))
		return
	}

	borrower, _ := middleware.BorrowerFromContext(r.Context())
	record, err := h.circulation.Checkout(r.Context(), borrower.ID, body.BookID, dueDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, adapters.MapBorrowingRecordDomainToApi(record))
}

// Return handles POST /api/borrowing/{id}/return. Administrators may close
// any loan, everyone else only their own.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	record, err := h.circulation.Return(r.Context(), chi.URLParam(r, "id"), scopedBorrowerID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBorrowingRecordDomainToApi(record))
}

// History handles GET /api/borrowing/history. Administrators see all records,
// everyone else their own.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	h.listRecords(w, r, h.circulation.History)
}

// CheckedOut handles GET /api/borrowing/checked-out.
func (h *Handler) CheckedOut(w http.ResponseWriter, r *http.Request) {
	h.listRecords(w, r, h.circulation.CheckedOut)
}

// Overdue handles GET /api/borrowing/overdue.
func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	h.listRecords(w, r, h.circulation.Overdue)
}

func (h *Handler) listRecords(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error),
) {
	records, err := fetch(r.Context(), scopedBorrowerID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	response := make([]api.BorrowingRecord, 0, len(records))
	for _, rec := range records {
		response = append(response, adapters.MapBorrowingRecordDomainToApi(rec))
	}
	respond.JSON(w, r, http.StatusOK, response)
}

// scopedBorrowerID returns the caller's borrower id, or the empty string for
// administrators, who are not scoped.
func scopedBorrowerID(r *http.Request) string {
	borrower, _ := middleware.BorrowerFromContext(r.Context())
	if borrower.IsAdmin {
		return ""
	}
	return borrower.ID
}
