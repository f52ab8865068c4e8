package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

// Service manages the book inventory.
type Service interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	SearchBooks(ctx context.Context, query domain.BookSearch) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (domain.Book, error)
	AddBook(ctx context.Context, book domain.Book) (domain.Book, error)
	UpdateBook(ctx context.Context, book domain.Book) error
	RemoveBook(ctx context.Context, id string) error
}

type service struct {
	books postgres.BookStore
}

func NewService(books postgres.BookStore) Service {
	return &service{books: books}
}

func (s *service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	records, err := s.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]domain.Book, 0, len(records))
	for _, r := range records {
		books = append(books, adapters.MapBookStoreToDomain(r))
	}
	return books, nil
}

func (s *service) SearchBooks(ctx context.Context, query domain.BookSearch) ([]domain.Book, error) {
	records, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	books := make([]domain.Book, 0, len(records))
	for _, r := range records {
		books = append(books, adapters.MapBookStoreToDomain(r))
	}
	return books, nil
}

func (s *service) GetBook(ctx context.Context, id string) (domain.Book, error) {
	record, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.Book{}, domain.NewNotFoundError("book %s not found", id)
		}
		return domain.Book{}, fmt.Errorf("get book %s: %w", id, err)
	}
	return adapters.MapBookStoreToDomain(*record), nil
}

func (s *service) AddBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	if err := validate(book); err != nil {
		return domain.Book{}, err
	}

	book.ID = uuid.NewString()
	if book.TotalCopies <= 0 {
		book.TotalCopies = 1
	}
	book.AvailableCopies = book.TotalCopies

	if err := s.books.Add(ctx, adapters.MapBookDomainToStore(book)); err != nil {
		return domain.Book{}, fmt.Errorf("add book: %w", err)
	}
	return book, nil
}

func (s *service) UpdateBook(ctx context.Context, book domain.Book) error {
	if err := validate(book); err != nil {
		return err
	}
	if err := s.books.Update(ctx, adapters.MapBookDomainToStore(book)); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.NewNotFoundError("book %s not found", book.ID)
		}
		return fmt.Errorf("update book %s: %w", book.ID, err)
	}
	return nil
}

func (s *service) RemoveBook(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.NewNotFoundError("book %s not found", id)
		}
		return fmt.Errorf("remove book %s: %w", id, err)
	}
	return nil
}

func validate(book domain.Book) error {
	if book.Title == "" || book.Author == "" {
		return domain.NewValidationError("book title and author are required")
	}
	return nil
}
