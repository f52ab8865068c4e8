package books

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/handlers/respond"
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/services/catalog"
)

type Handler struct {
	catalog catalog.Service
}

func NewHandler(catalog catalog.Service) *Handler {
	return &Handler{catalog: catalog}
}

// ListBooks handles GET /api/books.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.ListBooks(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	response := make([]api.Book, 0, len(books))
	for _, b := range books {
		response = append(response, adapters.MapBookDomainToApi(b))
	}
	respond.JSON(w, r, http.StatusOK, response)
}

// SearchBooks handles GET /api/books/search. Title and author match
// partially, ISBN exactly.
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := domain.BookSearch{
		Title:  r.URL.Query().Get("title"),
		Author: r.URL.Query().Get("author"),
		ISBN:   r.URL.Query().Get("ISBN"),
	}

	books, err := h.catalog.SearchBooks(r.Context(), query)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	response := make([]api.Book, 0, len(books))
	for _, b := range books {
		response = append(response, adapters.MapBookDomainToApi(b))
	}
	respond.JSON(w, r, http.StatusOK, response)
}

// GetBook handles GET /api/books/{id}.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBookDomainToApi(book))
}

// CreateBook handles POST /api/books.
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBookRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	book, err := h.catalog.AddBook(r.Context(), domain.Book{
		Title:       body.Title,
		Author:      body.Author,
		ISBN:        body.ISBN,
		Genre:       body.Genre,
		TotalCopies: body.TotalCopies,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, adapters.MapBookDomainToApi(book))
}

// UpdateBook handles PUT /api/books/{id}.
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateBookRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	book, err := h.catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	applyUpdate(&book, body)
	if err := h.catalog.UpdateBook(r.Context(), book); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBookDomainToApi(book))
}

// DeleteBook handles DELETE /api/books/{id}.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RemoveBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, nil)
}

func applyUpdate(book *domain.Book, body api.UpdateBookRequest) {
	if body.Title != nil {
		book.Title = *body.Title
	}
	if body.Author != nil {
		book.Author = *body.Author
	}
	if body.ISBN != nil {
		book.ISBN = *body.ISBN
	}
	if body.Genre != nil {
		book.Genre = *body.Genre
	}
	if body.TotalCopies != nil {
		delta := *body.TotalCopies - book.TotalCopies
		book.TotalCopies = *body.TotalCopies
		book.AvailableCopies += delta
		if book.AvailableCopies < 0 {
			book.AvailableCopies = 0
		}
	}
}
