package store

import "time"

// BorrowingRecord is one row of the borrowing history query, pre-joined with
// its book and borrower identity columns.
type BorrowingRecord struct {
	ID            string     `db:"id"`
	BookID        string     `db:"book_id"`
	BookTitle     string     `db:"book_title"`
	BookAuthor    string     `db:"book_author"`
	BookISBN      string     `db:"book_isbn"`
	BorrowerID    string     `db:"borrower_id"`
	BorrowerName  string     `db:"borrower_name"`
	BorrowerEmail string     `db:"borrower_email"`
	CheckoutDate  time.Time  `db:"checkout_date"`
	ReturnDate    time.Time  `db:"return_date"`
	ReturnedDate  *time.Time `db:"returned_date"`
	IsReturned    bool       `db:"is_returned"`
}
