package store

import "time"

type Book struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Author          string    `db:"author"`
	ISBN            string    `db:"isbn"`
	Genre           string    `db:"genre"`
	TotalCopies     int       `db:"total_copies"`
	AvailableCopies int       `db:"available_copies"`
	CreatedAt       time.Time `db:"created_at"`
}
