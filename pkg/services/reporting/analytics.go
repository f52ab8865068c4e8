package reporting

import (
	"fmt"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

func bookKey(r domain.BorrowingRecord) string {
	return fmt.Sprintf("%s by %s", r.Book.Title, r.Book.Author)
}

func bookTitle(r domain.BorrowingRecord) string {
	return r.Book.Title
}

func borrowerKey(r domain.BorrowingRecord) string {
	return r.Borrower.Name
}

// GenerateAnalytics derives the summary statistics for one record set.
// An empty set yields the all-zero summary with "None" sentinels.
func GenerateAnalytics(records []domain.BorrowingRecord) domain.AnalyticsSummary {
	return domain.AnalyticsSummary{
		TotalRecords:             len(records),
		UniqueBorrowers:          len(RankByFrequency(records, borrowerKey)),
		UniqueBooks:              len(RankByFrequency(records, bookKey)),
		AverageBorrowingDuration: AverageBorrowingDuration(records),
		MostBorrowedBook:         GetMostBorrowedBook(records),
		MostActiveBorrower:       GetMostActiveBorrower(records),
	}
}

// GetMostBorrowedBook returns the title of the most frequently borrowed book,
// or "None" when no record exists.
func GetMostBorrowedBook(records []domain.BorrowingRecord) string {
	return MostFrequent(RankByFrequency(records, bookTitle))
}

// GetMostActiveBorrower returns the name of the borrower with the most
// checkouts, or "None" when no record exists.
func GetMostActiveBorrower(records []domain.BorrowingRecord) string {
	return MostFrequent(RankByFrequency(records, borrowerKey))
}

// GetTopBooks ranks books by checkout count, keyed "{title} by {author}".
func GetTopBooks(records []domain.BorrowingRecord, n int) []domain.RankedEntry {
	return TopN(RankByFrequency(records, bookKey), n)
}

// GetTopBorrowers ranks borrowers by checkout count, keyed by name.
func GetTopBorrowers(records []domain.BorrowingRecord, n int) []domain.RankedEntry {
	return TopN(RankByFrequency(records, borrowerKey), n)
}
