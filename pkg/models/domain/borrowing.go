package domain

import "time"

// BookRef carries the book identity fields a borrowing record is joined with.
type BookRef struct {
	ID     string
	Title  string
	Author string
	ISBN   string
}

// BorrowerRef carries the borrower identity fields a borrowing record is joined with.
type BorrowerRef struct {
	ID    string
	Name  string
	Email string
}

// BorrowingRecord is one checkout-to-return lifecycle of a single book copy.
//
// ReturnedAt and IsReturned are redundant on purpose: upstream data may carry
// them out of sync. ReturnedAt is authoritative for duration math, IsReturned
// for status display.
type BorrowingRecord struct {
	ID           string
	Book         BookRef
	Borrower     BorrowerRef
	CheckoutDate time.Time
	DueDate      time.Time
	ReturnedAt   *time.Time
	IsReturned   bool
}

// Returned reports whether the loan has been closed.
func (r BorrowingRecord) Returned() bool {
	return r.ReturnedAt != nil
}
