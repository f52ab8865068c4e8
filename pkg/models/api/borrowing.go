package api

type BorrowingRecord struct {
	ID            string  `json:"id"`
	BookID        string  `json:"book_id"`
	BookTitle     string  `json:"book_title"`
	BookAuthor    string  `json:"book_author"`
	BookISBN      string  `json:"book_isbn"`
	BorrowerID    string  `json:"borrower_id"`
	BorrowerName  string  `json:"borrower_name"`
	CheckoutDate  string  `json:"checkout_date"`
	ReturnDate    string  `json:"return_date"`
	ReturnedDate  *string `json:"returned_date"`
	IsReturned    bool    `json:"is_returned"`
}

type CheckoutRequest struct {
	BookID  string `json:"book_id"`
	DueDate string `json:"due_date"`
}
