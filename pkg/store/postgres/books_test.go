package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

var bookColumns = []string{
	"id", "title", "author", "isbn", "genre", "total_copies", "available_copies", "created_at",
}

func setupBookStore(t *testing.T) (BookStore, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	s, err := NewBookStore(db)
	require.NoError(t, err)

	return s, mock
}

func TestBookStore_Search(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("title and author match partially", func(t *testing.T) {
		s, mock := setupBookStore(t)

		mock.ExpectQuery(`"title" ILIKE .+"author" ILIKE .+ ORDER BY "title" ASC`).
			WithArgs("%dune%", "%herbert%").
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow("book-1", "Dune", "Frank Herbert", "978-0-00-000001-1", "Sci-Fi", 3, 2, created))

		books, err := s.Search(ctx, domain.BookSearch{Title: "dune", Author: "herbert"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("isbn matches exactly", func(t *testing.T) {
		s, mock := setupBookStore(t)

		mock.ExpectQuery(`"isbn" = `).
			WithArgs("978-0-00-000001-1").
			WillReturnRows(sqlmock.NewRows(bookColumns))

		books, err := s.Search(ctx, domain.BookSearch{ISBN: "978-0-00-000001-1"})
		require.NoError(t, err)
		assert.Empty(t, books)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filters lists the whole catalog", func(t *testing.T) {
		s, mock := setupBookStore(t)

		mock.ExpectQuery(`SELECT .+ FROM "books" ORDER BY "title" ASC`).
			WillReturnRows(sqlmock.NewRows(bookColumns))

		_, err := s.Search(ctx, domain.BookSearch{})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
