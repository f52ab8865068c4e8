package adapters

import (
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
)

func MapBookStoreToDomain(b store.Book) domain.Book {
	return domain.Book{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func MapBookDomainToStore(b domain.Book) store.Book {
	return store.Book{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func MapBookDomainToApi(b domain.Book) api.Book {
	return api.Book{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}
