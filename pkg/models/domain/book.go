package domain

type Book struct {
	ID              string
	Title           string
	Author          string
	ISBN            string
	Genre           string
	TotalCopies     int
	AvailableCopies int
}

// Available reports whether at least one copy can be checked out.
func (b Book) Available() bool {
	return b.AvailableCopies > 0
}

// BookSearch filters a catalog search. Title and author match partially and
// case-insensitively, ISBN matches exactly; empty fields are skipped.
type BookSearch struct {
	Title  string
	Author string
	ISBN   string
}
