package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/lib-tools/library-atlas/pkg/models/store"
)

// BorrowerStore exposes the borrower account operations.
type BorrowerStore interface {
	List(ctx context.Context) ([]store.Borrower, error)
	GetByID(ctx context.Context, id string) (*store.Borrower, error)
	GetByEmail(ctx context.Context, email string) (*store.Borrower, error)
	Add(ctx context.Context, borrower store.Borrower) error
	Update(ctx context.Context, borrower store.Borrower) error
	Delete(ctx context.Context, id string) error
}

type borrowerStore struct {
	db *sqlx.DB
}

func NewBorrowerStore(db *sqlx.DB) (BorrowerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &borrowerStore{db: db}, nil
}

func (s *borrowerStore) List(ctx context.Context) ([]store.Borrower, error) {
	query, args, err := dialect.
		From("borrowers").
		Select("id", "name", "email", "password_hash", "is_admin", "created_at").
		Order(goqu.C("name").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var borrowers []store.Borrower
	if err := s.db.SelectContext(ctx, &borrowers, query, args...); err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}
	return borrowers, nil
}

func (s *borrowerStore) GetByID(ctx context.Context, id string) (*store.Borrower, error) {
	return s.getWhere(ctx, goqu.C("id").Eq(id))
}

func (s *borrowerStore) GetByEmail(ctx context.Context, email string) (*store.Borrower, error) {
	return s.getWhere(ctx, goqu.C("email").Eq(email))
}

func (s *borrowerStore) getWhere(ctx context.Context, cond goqu.Expression) (*store.Borrower, error) {
	query, args, err := dialect.
		From("borrowers").
		Select("id", "name", "email", "password_hash", "is_admin", "created_at").
		Where(cond).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var borrower store.Borrower
	if err := s.db.GetContext(ctx, &borrower, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get borrower: %w", err)
	}
	return &borrower, nil
}

func (s *borrowerStore) Add(ctx context.Context, borrower store.Borrower) error {
	query, args, err := dialect.
		Insert("borrowers").
		Cols("id", "name", "email", "password_hash", "is_admin").
		Vals(goqu.Vals{borrower.ID, borrower.Name, borrower.Email, borrower.PasswordHash, borrower.IsAdmin}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert borrower: %w", err)
	}
	return nil
}

func (s *borrowerStore) Update(ctx context.Context, borrower store.Borrower) error {
	query, args, err := dialect.
		Update("borrowers").
		Set(goqu.Record{
			"name":          borrower.Name,
			"email":         borrower.Email,
			"password_hash": borrower.PasswordHash,
		}).
		Where(goqu.C("id").Eq(borrower.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update borrower: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *borrowerStore) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.
		Delete("borrowers").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete borrower: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
