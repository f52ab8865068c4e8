package circulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

type mockBorrowingStore struct {
	mock.Mock
}

func (m *mockBorrowingStore) GetBorrowingHistory(
	ctx context.Context,
	startTime, endTime time.Time,
	borrowerID string,
) ([]store.BorrowingRecord, error) {
	args := m.Called(ctx, startTime, endTime, borrowerID)
	return args.Get(0).([]store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) GetOverdue(
	ctx context.Context,
	startTime, endTime time.Time,
	borrowerID string,
) ([]store.BorrowingRecord, error) {
	args := m.Called(ctx, startTime, endTime, borrowerID)
	return args.Get(0).([]store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) GetAll(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) GetCheckedOut(ctx context.Context, borrowerID string) ([]store.BorrowingRecord, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) GetOpenOverdue(
	ctx context.Context,
	asOf time.Time,
	borrowerID string,
) ([]store.BorrowingRecord, error) {
	args := m.Called(ctx, asOf, borrowerID)
	return args.Get(0).([]store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) GetByID(ctx context.Context, id string) (*store.BorrowingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.BorrowingRecord), args.Error(1)
}

func (m *mockBorrowingStore) Add(ctx context.Context, record store.BorrowingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockBorrowingStore) MarkReturned(ctx context.Context, id string, returnedAt time.Time) error {
	args := m.Called(ctx, id, returnedAt)
	return args.Error(0)
}

type mockBookStore struct {
	mock.Mock
}

func (m *mockBookStore) List(ctx context.Context) ([]store.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Book), args.Error(1)
}

func (m *mockBookStore) Search(ctx context.Context, query domain.BookSearch) ([]store.Book, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]store.Book), args.Error(1)
}

func (m *mockBookStore) GetByID(ctx context.Context, id string) (*store.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Book), args.Error(1)
}

func (m *mockBookStore) Add(ctx context.Context, book store.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookStore) Update(ctx context.Context, book store.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookStore) AdjustAvailability(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()
	dueDate := time.Now().AddDate(0, 0, 14)

	t.Run("reserves a copy and records the checkout", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		books.On("GetByID", mock.Anything, "book-1").
			Return(&store.Book{ID: "book-1", Title: "Dune", AvailableCopies: 1}, nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", -1).Return(nil)
		borrowing.On("Add", mock.Anything, mock.MatchedBy(func(r store.BorrowingRecord) bool {
			return r.BookID == "book-1" && r.BorrowerID == "borrower-1" &&
				r.ID != "" && r.ReturnDate.Equal(dueDate)
		})).Return(nil)
		borrowing.On("GetByID", mock.Anything, mock.Anything).
			Return(&store.BorrowingRecord{
				BookID:     "book-1",
				BookTitle:  "Dune",
				BorrowerID: "borrower-1",
				ReturnDate: dueDate,
			}, nil)

		svc := NewService(borrowing, books)

		record, err := svc.Checkout(ctx, "borrower-1", "book-1", dueDate)
		require.NoError(t, err)
		assert.Equal(t, "Dune", record.Book.Title)
		assert.False(t, record.Returned())

		borrowing.AssertExpectations(t)
		books.AssertExpectations(t)
	})

	t.Run("no copies available", func(t *testing.T) {
		books := new(mockBookStore)
		books.On("GetByID", mock.Anything, "book-1").
			Return(&store.Book{ID: "book-1", Title: "Dune", AvailableCopies: 0}, nil)

		svc := NewService(new(mockBorrowingStore), books)

		_, err := svc.Checkout(ctx, "borrower-1", "book-1", dueDate)
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown book", func(t *testing.T) {
		books := new(mockBookStore)
		books.On("GetByID", mock.Anything, "missing").Return(nil, postgres.ErrNotFound)

		svc := NewService(new(mockBorrowingStore), books)

		_, err := svc.Checkout(ctx, "borrower-1", "missing", dueDate)
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("due date in the past", func(t *testing.T) {
		svc := NewService(new(mockBorrowingStore), new(mockBookStore))

		_, err := svc.Checkout(ctx, "borrower-1", "book-1", time.Now().AddDate(0, 0, -1))
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("failed insert frees the reserved copy", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		books.On("GetByID", mock.Anything, "book-1").
			Return(&store.Book{ID: "book-1", Title: "Dune", AvailableCopies: 1}, nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", -1).Return(nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", 1).Return(nil)
		borrowing.On("Add", mock.Anything, mock.Anything).Return(assert.AnError)

		svc := NewService(borrowing, books)

		_, err := svc.Checkout(ctx, "borrower-1", "book-1", dueDate)
		require.Error(t, err)

		books.AssertExpectations(t)
	})
}

func TestService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the loan and restores the copy", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		borrowing.On("GetByID", mock.Anything, "rec-1").
			Return(&store.BorrowingRecord{ID: "rec-1", BookID: "book-1", BookTitle: "Dune", BorrowerID: "borrower-1"}, nil)
		borrowing.On("MarkReturned", mock.Anything, "rec-1", mock.Anything).Return(nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", 1).Return(nil)

		svc := NewService(borrowing, books)

		record, err := svc.Return(ctx, "rec-1", "borrower-1")
		require.NoError(t, err)
		assert.True(t, record.Returned())
		assert.True(t, record.IsReturned)

		borrowing.AssertExpectations(t)
		books.AssertExpectations(t)
	})

	t.Run("unscoped caller closes any loan", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		borrowing.On("GetByID", mock.Anything, "rec-1").
			Return(&store.BorrowingRecord{ID: "rec-1", BookID: "book-1", BorrowerID: "borrower-2"}, nil)
		borrowing.On("MarkReturned", mock.Anything, "rec-1", mock.Anything).Return(nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", 1).Return(nil)

		svc := NewService(borrowing, books)

		_, err := svc.Return(ctx, "rec-1", "")
		require.NoError(t, err)
	})

	t.Run("someone else's loan reads as missing", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		borrowing.On("GetByID", mock.Anything, "rec-1").
			Return(&store.BorrowingRecord{ID: "rec-1", BookID: "book-1", BorrowerID: "borrower-2"}, nil)

		svc := NewService(borrowing, books)

		_, err := svc.Return(ctx, "rec-1", "borrower-1")
		require.Error(t, err)
		assert.True(t, domain.IsNotFoundError(err))

		borrowing.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything, mock.Anything)
		books.AssertNotCalled(t, "AdjustAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already returned", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		borrowing.On("GetByID", mock.Anything, "rec-1").
			Return(&store.BorrowingRecord{ID: "rec-1", BorrowerID: "borrower-1", IsReturned: true}, nil)

		svc := NewService(borrowing, new(mockBookStore))

		_, err := svc.Return(ctx, "rec-1", "borrower-1")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown record", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		borrowing.On("GetByID", mock.Anything, "missing").Return(nil, postgres.ErrNotFound)

		svc := NewService(borrowing, new(mockBookStore))

		_, err := svc.Return(ctx, "missing", "borrower-1")
		require.Error(t, err)
		assert.True(t, domain.IsNotFoundError(err))
	})

	t.Run("failed update takes the restored copy back", func(t *testing.T) {
		borrowing := new(mockBorrowingStore)
		books := new(mockBookStore)
		borrowing.On("GetByID", mock.Anything, "rec-1").
			Return(&store.BorrowingRecord{ID: "rec-1", BookID: "book-1", BorrowerID: "borrower-1"}, nil)
		books.On("AdjustAvailability", mock.Anything, "book-1", 1).Return(nil)
		borrowing.On("MarkReturned", mock.Anything, "rec-1", mock.Anything).Return(assert.AnError)
		books.On("AdjustAvailability", mock.Anything, "book-1", -1).Return(nil)

		svc := NewService(borrowing, books)

		_, err := svc.Return(ctx, "rec-1", "borrower-1")
		require.Error(t, err)

		books.AssertExpectations(t)
	})
}

func TestService_CheckedOut(t *testing.T) {
	borrowing := new(mockBorrowingStore)
	borrowing.On("GetCheckedOut", mock.Anything, "borrower-1").
		Return([]store.BorrowingRecord{{ID: "rec-1", BookTitle: "Dune"}}, nil)

	svc := NewService(borrowing, new(mockBookStore))

	records, err := svc.CheckedOut(context.Background(), "borrower-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Book.Title)
}

func TestService_Overdue(t *testing.T) {
	borrowing := new(mockBorrowingStore)
	borrowing.On("GetOpenOverdue", mock.Anything, mock.Anything, "").
		Return([]store.BorrowingRecord{{ID: "rec-1"}, {ID: "rec-2"}}, nil)

	svc := NewService(borrowing, new(mockBookStore))

	records, err := svc.Overdue(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
