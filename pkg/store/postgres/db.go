package postgres

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

var dialect = goqu.Dialect("postgres")

const borrowersSchema = `
	CREATE TABLE IF NOT EXISTS borrowers (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

const booksSchema = `
	CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		isbn TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		total_copies INT NOT NULL DEFAULT 1,
		available_copies INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

const borrowingRecordsSchema = `
	CREATE TABLE IF NOT EXISTS borrowing_records (
		id UUID PRIMARY KEY,
		book_id UUID NOT NULL REFERENCES books (id),
		borrower_id UUID NOT NULL REFERENCES borrowers (id),
		checkout_date TIMESTAMPTZ NOT NULL,
		return_date TIMESTAMPTZ NOT NULL,
		returned_date TIMESTAMPTZ NULL,
		is_returned BOOLEAN NOT NULL DEFAULT FALSE
	);
`

var bootQueries = []string{
	borrowersSchema,
	booksSchema,
	borrowingRecordsSchema,
}

type Settings struct {
	DSN string
}

// NewDB opens a Postgres connection via the pgx stdlib driver and ensures the
// schema exists.
func NewDB(settings Settings) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return db, nil
}
