package adapters

import (
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

func MapAnalyticsSummaryDomainToApi(s domain.AnalyticsSummary) api.AnalyticsSummary {
	return api.AnalyticsSummary{
		TotalRecords:             s.TotalRecords,
		UniqueBorrowers:          s.UniqueBorrowers,
		UniqueBooks:              s.UniqueBooks,
		AverageBorrowingDuration: s.AverageBorrowingDuration,
		MostBorrowedBook:         s.MostBorrowedBook,
		MostActiveBorrower:       s.MostActiveBorrower,
	}
}

func MapPeriodAnalyticsDomainToApi(p domain.PeriodAnalytics) api.PeriodAnalytics {
	out := api.PeriodAnalytics{
		StartDate: p.Period.Start.Format("2006-01-02"),
		EndDate:   p.Period.End.Format("2006-01-02"),
		Summary:   MapAnalyticsSummaryDomainToApi(p.Summary),
	}
	for _, e := range p.TopBooks {
		out.TopBooks = append(out.TopBooks, api.RankedBook{Book: e.Entity, Count: e.Count})
	}
	for _, e := range p.TopBorrowers {
		out.TopBorrowers = append(out.TopBorrowers, api.RankedBorrower{Borrower: e.Entity, Count: e.Count})
	}
	return out
}
