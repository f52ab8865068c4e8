package api

// GenerateReportRequest is the body of POST /api/reports/generate.
// Dates use the YYYY-MM-DD form.
type GenerateReportRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	ReportType string `json:"report_type"`
	Format     string `json:"format,omitempty"`
}

// AnalyticsRequest is the body of POST /api/reports/analytics.
type AnalyticsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AnalyticsSummary struct {
	TotalRecords             int    `json:"total_records"`
	UniqueBorrowers          int    `json:"unique_borrowers"`
	UniqueBooks              int    `json:"unique_books"`
	AverageBorrowingDuration int    `json:"average_borrowing_duration"`
	MostBorrowedBook         string `json:"most_borrowed_book"`
	MostActiveBorrower       string `json:"most_active_borrower"`
}

type RankedBook struct {
	Book  string `json:"book"`
	Count int    `json:"count"`
}

type RankedBorrower struct {
	Borrower string `json:"borrower"`
	Count    int    `json:"count"`
}

type PeriodAnalytics struct {
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Summary      AnalyticsSummary `json:"summary"`
	TopBooks     []RankedBook     `json:"top_books"`
	TopBorrowers []RankedBorrower `json:"top_borrowers"`
}
