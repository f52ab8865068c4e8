package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
)

// BookStore exposes the book inventory operations.
type BookStore interface {
	List(ctx context.Context) ([]store.Book, error)
	Search(ctx context.Context, query domain.BookSearch) ([]store.Book, error)
	GetByID(ctx context.Context, id string) (*store.Book, error)
	Add(ctx context.Context, book store.Book) error
	Update(ctx context.Context, book store.Book) error
	Delete(ctx context.Context, id string) error
	// AdjustAvailability changes available_copies by delta, refusing to move
	// it below zero or above total_copies.
	AdjustAvailability(ctx context.Context, id string, delta int) error
}

type bookStore struct {
	db *sqlx.DB
}

func NewBookStore(db *sqlx.DB) (BookStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &bookStore{db: db}, nil
}

func (s *bookStore) List(ctx context.Context) ([]store.Book, error) {
	query, args, err := dialect.
		From("books").
		Select("id", "title", "author", "isbn", "genre", "total_copies", "available_copies", "created_at").
		Order(goqu.C("title").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var books []store.Book
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *bookStore) Search(ctx context.Context, search domain.BookSearch) ([]store.Book, error) {
	ds := dialect.
		From("books").
		Select("id", "title", "author", "isbn", "genre", "total_copies", "available_copies", "created_at").
		Order(goqu.C("title").Asc())

	if search.Title != "" {
		ds = ds.Where(goqu.C("title").ILike("%" + search.Title + "%"))
	}
	if search.Author != "" {
		ds = ds.Where(goqu.C("author").ILike("%" + search.Author + "%"))
	}
	if search.ISBN != "" {
		ds = ds.Where(goqu.C("isbn").Eq(search.ISBN))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var books []store.Book
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

func (s *bookStore) GetByID(ctx context.Context, id string) (*store.Book, error) {
	query, args, err := dialect.
		From("books").
		Select("id", "title", "author", "isbn", "genre", "total_copies", "available_copies", "created_at").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var book store.Book
	if err := s.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

func (s *bookStore) Add(ctx context.Context, book store.Book) error {
	query, args, err := dialect.
		Insert("books").
		Cols("id", "title", "author", "isbn", "genre", "total_copies", "available_copies").
		Vals(goqu.Vals{book.ID, book.Title, book.Author, book.ISBN, book.Genre, book.TotalCopies, book.AvailableCopies}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (s *bookStore) Update(ctx context.Context, book store.Book) error {
	query, args, err := dialect.
		Update("books").
		Set(goqu.Record{
			"title":            book.Title,
			"author":           book.Author,
			"isbn":             book.ISBN,
			"genre":            book.Genre,
			"total_copies":     book.TotalCopies,
			"available_copies": book.AvailableCopies,
		}).
		Where(goqu.C("id").Eq(book.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bookStore) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.
		Delete("books").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bookStore) AdjustAvailability(ctx context.Context, id string, delta int) error {
	query, args, err := dialect.
		Update("books").
		Set(goqu.Record{"available_copies": goqu.L("available_copies + ?", delta)}).
		Where(
			goqu.C("id").Eq(id),
			goqu.L("available_copies + ?", delta).Gte(0),
			goqu.L("available_copies + ?", delta).Lte(goqu.C("total_copies")),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust availability: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
