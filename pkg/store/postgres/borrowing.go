package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/lib-tools/library-atlas/pkg/models/store"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// BorrowingStore exposes the borrowing history queries the reporting and
// circulation services run. Range boundaries are inclusive; an empty
// borrowerID means no borrower scoping.
type BorrowingStore interface {
	GetBorrowingHistory(ctx context.Context, startTime, endTime time.Time, borrowerID string) ([]store.BorrowingRecord, error)
	GetOverdue(ctx context.Context, startTime, endTime time.Time, borrowerID string) ([]store.BorrowingRecord, error)
	GetAll(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error)
	GetCheckedOut(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error)
	GetOpenOverdue(ctx context.Context, asOf time.Time, borrowerID string) ([]store.BorrowingRecord, error)
	GetByID(ctx context.Context, id string) (*store.BorrowingRecord, error)
	Add(ctx context.Context, record store.BorrowingRecord) error
	MarkReturned(ctx context.Context, id string, returnedAt time.Time) error
}

type borrowingStore struct {
	db *sqlx.DB
}

func NewBorrowingStore(db *sqlx.DB) (BorrowingStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &borrowingStore{db: db}, nil
}

func historyDataset() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("borrowing_records").As("b")).
		Join(goqu.T("books").As("bk"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("bk.id")))).
		Join(goqu.T("borrowers").As("br"), goqu.On(goqu.I("b.borrower_id").Eq(goqu.I("br.id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("bk.id").As("book_id"),
			goqu.I("bk.title").As("book_title"),
			goqu.I("bk.author").As("book_author"),
			goqu.I("bk.isbn").As("book_isbn"),
			goqu.I("br.id").As("borrower_id"),
			goqu.I("br.name").As("borrower_name"),
			goqu.I("br.email").As("borrower_email"),
			goqu.I("b.checkout_date"),
			goqu.I("b.return_date"),
			goqu.I("b.returned_date"),
			goqu.I("b.is_returned"),
		)
}

func (s *borrowingStore) selectRecords(ctx context.Context, ds *goqu.SelectDataset) ([]store.BorrowingRecord, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []store.BorrowingRecord
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("query borrowing records: %w", err)
	}
	return records, nil
}

func (s *borrowingStore) GetBorrowingHistory(
	ctx context.Context,
	startTime, endTime time.Time,
	borrowerID string,
) ([]store.BorrowingRecord, error) {
	ds := historyDataset().
		Where(goqu.I("b.checkout_date").Between(goqu.Range(startTime, endTime))).
		Order(goqu.I("b.checkout_date").Desc())

	if borrowerID != "" {
		ds = ds.Where(goqu.I("b.borrower_id").Eq(borrowerID))
	}

	return s.selectRecords(ctx, ds)
}

func (s *borrowingStore) GetOverdue(
	ctx context.Context,
	startTime, endTime time.Time,
	borrowerID string,
) ([]store.BorrowingRecord, error) {
	// A loan counts as overdue when it is still outstanding or was returned
	// strictly after its due date.
	ds := historyDataset().
		Where(
			goqu.I("b.return_date").Between(goqu.Range(startTime, endTime)),
			goqu.Or(
				goqu.I("b.returned_date").IsNull(),
				goqu.I("b.returned_date").Gt(goqu.I("b.return_date")),
			),
		).
		Order(goqu.I("b.return_date").Desc())

	if borrowerID != "" {
		ds = ds.Where(goqu.I("b.borrower_id").Eq(borrowerID))
	}

	return s.selectRecords(ctx, ds)
}

func (s *borrowingStore) GetAll(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error) {
	ds := historyDataset().Order(goqu.I("b.checkout_date").Desc())
	if borrowerID != "" {
		ds = ds.Where(goqu.I("b.borrower_id").Eq(borrowerID))
	}
	return s.selectRecords(ctx, ds)
}

func (s *borrowingStore) GetCheckedOut(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error) {
	ds := historyDataset().
		Where(goqu.I("b.is_returned").IsFalse()).
		Order(goqu.I("b.checkout_date").Desc())

	if borrowerID != "" {
		ds = ds.Where(goqu.I("b.borrower_id").Eq(borrowerID))
	}

	return s.selectRecords(ctx, ds)
}

func (s *borrowingStore) GetOpenOverdue(ctx context.Context, asOf time.Time, borrowerID string) ([]store.BorrowingRecord, error) {
	ds := historyDataset().
		Where(
			goqu.I("b.is_returned").IsFalse(),
			goqu.I("b.return_date").Lt(asOf),
		).
		Order(goqu.I("b.return_date").Asc())

	if borrowerID != "" {
		ds = ds.Where(goqu.I("b.borrower_id").Eq(borrowerID))
	}

	return s.selectRecords(ctx, ds)
}

func (s *borrowingStore) GetByID(ctx context.Context, id string) (*store.BorrowingRecord, error) {
	ds := historyDataset().Where(goqu.I("b.id").Eq(id))

	records, err := s.selectRecords(ctx, ds)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

func (s *borrowingStore) Add(ctx context.Context, record store.BorrowingRecord) error {
	query, args, err := dialect.
		Insert("borrowing_records").
		Cols("id", "book_id", "borrower_id", "checkout_date", "return_date", "returned_date", "is_returned").
		Vals(goqu.Vals{
			record.ID,
			record.BookID,
			record.BorrowerID,
			record.CheckoutDate,
			record.ReturnDate,
			record.ReturnedDate,
			record.IsReturned,
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert borrowing record: %w", err)
	}
	return nil
}

func (s *borrowingStore) MarkReturned(ctx context.Context, id string, returnedAt time.Time) error {
	query, args, err := dialect.
		Update("borrowing_records").
		Set(goqu.Record{"returned_date": returnedAt, "is_returned": true}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
