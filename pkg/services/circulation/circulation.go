package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

// Service runs the checkout and return workflows. An empty borrowerID on the
// read and return operations means no borrower scoping.
type Service interface {
	Checkout(ctx context.Context, borrowerID, bookID string, dueDate time.Time) (domain.BorrowingRecord, error)
	Return(ctx context.Context, recordID, borrowerID string) (domain.BorrowingRecord, error)
	History(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error)
	CheckedOut(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error)
	Overdue(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error)
}

type service struct {
	borrowing postgres.BorrowingStore
	books     postgres.BookStore
	now       func() time.Time
}

func NewService(borrowing postgres.BorrowingStore, books postgres.BookStore) Service {
	return &service{
		borrowing: borrowing,
		books:     books,
		now:       time.Now,
	}
}

func (s *service) Checkout(
	ctx context.Context,
	borrowerID, bookID string,
	dueDate time.Time,
) (domain.BorrowingRecord, error) {
	now := s.now()
	if dueDate.Before(now) {
		return domain.BorrowingRecord{}, domain.NewValidationError(
			"due date %s is in the past", dueDate.Format("2006-01-02"))
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.BorrowingRecord{}, domain.NewValidationError("book %s does not exist", bookID)
		}
		return domain.BorrowingRecord{}, fmt.Errorf("look up book: %w", err)
	}
	if book.AvailableCopies <= 0 {
		return domain.BorrowingRecord{}, domain.NewValidationError("no copies of %q available", book.Title)
	}

	if err := s.books.AdjustAvailability(ctx, bookID, -1); err != nil {
		return domain.BorrowingRecord{}, fmt.Errorf("reserve copy: %w", err)
	}

	record := store.BorrowingRecord{
		ID:           uuid.NewString(),
		BookID:       bookID,
		BorrowerID:   borrowerID,
		CheckoutDate: now,
		ReturnDate:   dueDate,
	}
	if err := s.borrowing.Add(ctx, record); err != nil {
		// Free the copy again so availability does not drift.
		if restoreErr := s.books.AdjustAvailability(ctx, bookID, 1); restoreErr != nil {
			return domain.BorrowingRecord{}, fmt.Errorf("record checkout: %w (restore failed: %v)", err, restoreErr)
		}
		return domain.BorrowingRecord{}, fmt.Errorf("record checkout: %w", err)
	}

	stored, err := s.borrowing.GetByID(ctx, record.ID)
	if err != nil {
		return domain.BorrowingRecord{}, fmt.Errorf("read back checkout: %w", err)
	}
	return adapters.MapBorrowingRecordStoreToDomain(*stored), nil
}

func (s *service) Return(ctx context.Context, recordID, borrowerID string) (domain.BorrowingRecord, error) {
	record, err := s.borrowing.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.BorrowingRecord{}, domain.NewNotFoundError("borrowing record %s not found", recordID)
		}
		return domain.BorrowingRecord{}, fmt.Errorf("look up record: %w", err)
	}
	// A scoped caller only sees their own records; respond as if the record
	// does not exist rather than confirming it belongs to someone else.
	if borrowerID != "" && record.BorrowerID != borrowerID {
		return domain.BorrowingRecord{}, domain.NewNotFoundError("borrowing record %s not found", recordID)
	}
	if record.IsReturned || record.ReturnedDate != nil {
		return domain.BorrowingRecord{}, domain.NewValidationError("record %s is already returned", recordID)
	}

	if err := s.books.AdjustAvailability(ctx, record.BookID, 1); err != nil {
		return domain.BorrowingRecord{}, fmt.Errorf("restore copy: %w", err)
	}

	returnedAt := s.now()
	if err := s.borrowing.MarkReturned(ctx, recordID, returnedAt); err != nil {
		// Take the copy back so availability does not drift.
		if restoreErr := s.books.AdjustAvailability(ctx, record.BookID, -1); restoreErr != nil {
			return domain.BorrowingRecord{}, fmt.Errorf("mark returned: %w (restore failed: %v)", err, restoreErr)
		}
		return domain.BorrowingRecord{}, fmt.Errorf("mark returned: %w", err)
	}

	record.ReturnedDate = &returnedAt
	record.IsReturned = true
	return adapters.MapBorrowingRecordStoreToDomain(*record), nil
}

func (s *service) History(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error) {
	records, err := s.borrowing.GetAll(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return adapters.MapBorrowingRecordsStoreToDomain(records), nil
}

func (s *service) CheckedOut(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error) {
	records, err := s.borrowing.GetCheckedOut(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("fetch checked-out records: %w", err)
	}
	return adapters.MapBorrowingRecordsStoreToDomain(records), nil
}

func (s *service) Overdue(ctx context.Context, borrowerID string) ([]domain.BorrowingRecord, error) {
	records, err := s.borrowing.GetOpenOverdue(ctx, s.now(), borrowerID)
	if err != nil {
		return nil, fmt.Errorf("fetch overdue records: %w", err)
	}
	return adapters.MapBorrowingRecordsStoreToDomain(records), nil
}
