package adapters

import (
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
)

func MapBorrowerStoreToDomain(b store.Borrower) domain.Borrower {
	return domain.Borrower{
		ID:      b.ID,
		Name:    b.Name,
		Email:   b.Email,
		IsAdmin: b.IsAdmin,
	}
}

func MapBorrowerDomainToApi(b domain.Borrower) api.Borrower {
	return api.Borrower{
		ID:      b.ID,
		Name:    b.Name,
		Email:   b.Email,
		IsAdmin: b.IsAdmin,
	}
}
