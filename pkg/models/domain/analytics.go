package domain

// NoneSentinel is returned for leaderboard positions no record can fill.
const NoneSentinel = "None"

// AnalyticsSummary is the derived statistics over one record set.
type AnalyticsSummary struct {
	TotalRecords             int
	UniqueBorrowers          int
	UniqueBooks              int
	AverageBorrowingDuration int
	MostBorrowedBook         string
	MostActiveBorrower       string
}

// RankedEntry is one leaderboard position: an entity key and its
// occurrence count.
type RankedEntry struct {
	Entity string
	Count  int
}

// PeriodAnalytics is the analytics result scoped to an explicit date range.
type PeriodAnalytics struct {
	Period       DateRange
	Summary      AnalyticsSummary
	TopBooks     []RankedEntry
	TopBorrowers []RankedEntry
}
