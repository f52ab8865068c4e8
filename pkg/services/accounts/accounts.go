package accounts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

// ProfileUpdate carries the fields a borrower may change on their own
// account. Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Service exposes borrower account operations: administrator lookups plus
// self-service profile management.
type Service interface {
	ListBorrowers(ctx context.Context) ([]domain.Borrower, error)
	GetBorrower(ctx context.Context, id string) (domain.Borrower, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (domain.Borrower, error)
	RemoveBorrower(ctx context.Context, id string) error
}

type service struct {
	borrowers postgres.BorrowerStore
}

func NewService(borrowers postgres.BorrowerStore) Service {
	return &service{borrowers: borrowers}
}

func (s *service) ListBorrowers(ctx context.Context) ([]domain.Borrower, error) {
	records, err := s.borrowers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}

	borrowers := make([]domain.Borrower, 0, len(records))
	for _, r := range records {
		borrowers = append(borrowers, adapters.MapBorrowerStoreToDomain(r))
	}
	return borrowers, nil
}

func (s *service) GetBorrower(ctx context.Context, id string) (domain.Borrower, error) {
	record, err := s.borrowers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.Borrower{}, domain.NewNotFoundError("borrower %s not found", id)
		}
		return domain.Borrower{}, fmt.Errorf("get borrower %s: %w", id, err)
	}
	return adapters.MapBorrowerStoreToDomain(*record), nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (domain.Borrower, error) {
	record, err := s.borrowers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.Borrower{}, domain.NewNotFoundError("borrower %s not found", id)
		}
		return domain.Borrower{}, fmt.Errorf("get borrower %s: %w", id, err)
	}

	if update.Name != nil {
		if *update.Name == "" {
			return domain.Borrower{}, domain.NewValidationError("name must not be empty")
		}
		record.Name = *update.Name
	}
	if update.Email != nil {
		if *update.Email == "" {
			return domain.Borrower{}, domain.NewValidationError("email must not be empty")
		}
		if other, err := s.borrowers.GetByEmail(ctx, *update.Email); err == nil && other.ID != id {
			return domain.Borrower{}, domain.NewValidationError("email %q is already registered", *update.Email)
		} else if err != nil && !errors.Is(err, postgres.ErrNotFound) {
			return domain.Borrower{}, fmt.Errorf("look up email: %w", err)
		}
		record.Email = *update.Email
	}
	if update.Password != nil {
		if len(*update.Password) < 6 {
			return domain.Borrower{}, domain.NewValidationError("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.Borrower{}, fmt.Errorf("hash password: %w", err)
		}
		record.PasswordHash = string(hash)
	}

	if err := s.borrowers.Update(ctx, *record); err != nil {
		return domain.Borrower{}, fmt.Errorf("update borrower %s: %w", id, err)
	}
	return adapters.MapBorrowerStoreToDomain(*record), nil
}

func (s *service) RemoveBorrower(ctx context.Context, id string) error {
	if err := s.borrowers.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.NewNotFoundError("borrower %s not found", id)
		}
		return fmt.Errorf("remove borrower %s: %w", id, err)
	}
	return nil
}
