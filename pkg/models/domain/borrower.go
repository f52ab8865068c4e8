package domain

type Borrower struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}
