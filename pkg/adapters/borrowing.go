package adapters

import (
	"time"

	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
)

func MapBorrowingRecordStoreToDomain(r store.BorrowingRecord) domain.BorrowingRecord {
	return domain.BorrowingRecord{
		ID: r.ID,
		Book: domain.BookRef{
			ID:     r.BookID,
			Title:  r.BookTitle,
			Author: r.BookAuthor,
			ISBN:   r.BookISBN,
		},
		Borrower: domain.BorrowerRef{
			ID:    r.BorrowerID,
			Name:  r.BorrowerName,
			Email: r.BorrowerEmail,
		},
		CheckoutDate: r.CheckoutDate,
		DueDate:      r.ReturnDate,
		ReturnedAt:   r.ReturnedDate,
		IsReturned:   r.IsReturned,
	}
}

func MapBorrowingRecordsStoreToDomain(records []store.BorrowingRecord) []domain.BorrowingRecord {
	mapped := make([]domain.BorrowingRecord, 0, len(records))
	for _, r := range records {
		mapped = append(mapped, MapBorrowingRecordStoreToDomain(r))
	}
	return mapped
}

func MapBorrowingRecordDomainToApi(r domain.BorrowingRecord) api.BorrowingRecord {
	record := api.BorrowingRecord{
		ID:           r.ID,
		BookID:       r.Book.ID,
		BookTitle:    r.Book.Title,
		BookAuthor:   r.Book.Author,
		BookISBN:     r.Book.ISBN,
		BorrowerID:   r.Borrower.ID,
		BorrowerName: r.Borrower.Name,
		CheckoutDate: r.CheckoutDate.Format(time.RFC3339),
		ReturnDate:   r.DueDate.Format(time.RFC3339),
		IsReturned:   r.IsReturned,
	}
	if r.ReturnedAt != nil {
		returned := r.ReturnedAt.Format(time.RFC3339)
		record.ReturnedDate = &returned
	}
	return record
}
