package reporting

import (
	"strconv"
	"time"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// ReportColumns returns the ordered header for a report type. Last-month
// variants share their base type's columns.
func ReportColumns(t domain.ReportType) []string {
	switch t.Base() {
	case domain.ReportTypeBorrowing:
		return []string{"book_title", "author", "isbn", "borrower_name", "checkout_date", "return_date", "status"}
	case domain.ReportTypeOverdue:
		return []string{"book_title", "author", "isbn", "borrower_name", "checkout_date", "due_date", "days_overdue"}
	case domain.ReportTypeInventory:
		return []string{"book_title", "author", "isbn", "genre", "total_copies", "available_copies", "status"}
	default:
		return nil
	}
}

// FormatReportData flattens borrowing records into report rows for the given
// type. A nil record set yields an empty row set, never an error.
func FormatReportData(records []domain.BorrowingRecord, t domain.ReportType, now time.Time) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(records))
	for _, r := range records {
		switch t.Base() {
		case domain.ReportTypeBorrowing:
			rows = append(rows, formatBorrowingRow(r))
		case domain.ReportTypeOverdue:
			rows = append(rows, formatOverdueRow(r, now))
		}
	}
	return rows
}

// FormatInventoryData flattens book rows into inventory report rows.
func FormatInventoryData(books []domain.Book) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(books))
	for _, b := range books {
		status := "Available"
		if !b.Available() {
			status = "Unavailable"
		}
		rows = append(rows, domain.ReportRow{
			"book_title":       b.Title,
			"author":           b.Author,
			"isbn":             b.ISBN,
			"genre":            b.Genre,
			"total_copies":     strconv.Itoa(b.TotalCopies),
			"available_copies": strconv.Itoa(b.AvailableCopies),
			"status":           status,
		})
	}
	return rows
}

func formatBorrowingRow(r domain.BorrowingRecord) domain.ReportRow {
	// IsReturned drives the status string even when it disagrees with the
	// returned timestamp; the legacy flag owns status display.
	status := "Not Returned"
	if r.IsReturned {
		status = "Returned"
	}
	return domain.ReportRow{
		"book_title":    r.Book.Title,
		"author":        r.Book.Author,
		"isbn":          r.Book.ISBN,
		"borrower_name": r.Borrower.Name,
		"checkout_date": r.CheckoutDate.Format(dateLayout),
		"return_date":   r.DueDate.Format(dateLayout),
		"status":        status,
	}
}

func formatOverdueRow(r domain.BorrowingRecord, now time.Time) domain.ReportRow {
	daysOverdue := int(now.Sub(r.DueDate).Hours() / hoursPerDay)
	return domain.ReportRow{
		"book_title":    r.Book.Title,
		"author":        r.Book.Author,
		"isbn":          r.Book.ISBN,
		"borrower_name": r.Borrower.Name,
		"checkout_date": r.CheckoutDate.Format(dateLayout),
		"due_date":      r.DueDate.Format(dateLayout),
		"days_overdue":  strconv.Itoa(daysOverdue),
	}
}
