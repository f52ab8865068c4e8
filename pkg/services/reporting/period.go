package reporting

import (
	"time"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// LastMonthRange resolves the calendar month preceding now into an inclusive
// range: its first instant through its last second.
func LastMonthRange(now time.Time) domain.DateRange {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return domain.DateRange{
		Start: firstOfCurrent.AddDate(0, -1, 0),
		End:   firstOfCurrent.Add(-time.Second),
	}
}

// ResolvePeriod turns a report request into the concrete range its fetch runs
// against. Last-month types ignore the caller's dates; explicit requests are
// validated start <= end.
func ResolvePeriod(req domain.ReportRequest, now time.Time) (domain.DateRange, error) {
	if req.Type.LastMonth() {
		return LastMonthRange(now), nil
	}
	return domain.NewDateRange(req.StartDate, req.EndDate)
}
