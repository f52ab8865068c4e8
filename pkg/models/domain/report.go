package domain

import (
	"fmt"
	"time"
)

type ReportType string

const (
	ReportTypeBorrowing          ReportType = "borrowing"
	ReportTypeOverdue            ReportType = "overdue"
	ReportTypeInventory          ReportType = "inventory"
	ReportTypeLastMonthBorrowing ReportType = "last_month_borrowing"
	ReportTypeLastMonthOverdue   ReportType = "last_month_overdue"
)

// ParseReportType maps a boundary string onto the closed set of report types.
func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(s); t {
	case ReportTypeBorrowing, ReportTypeOverdue, ReportTypeInventory,
		ReportTypeLastMonthBorrowing, ReportTypeLastMonthOverdue:
		return t, nil
	default:
		return "", NewValidationError("unrecognized report type %q", s)
	}
}

// Base resolves the last-month convenience types to the type that selects
// their fields and filter.
func (t ReportType) Base() ReportType {
	switch t {
	case ReportTypeLastMonthBorrowing:
		return ReportTypeBorrowing
	case ReportTypeLastMonthOverdue:
		return ReportTypeOverdue
	default:
		return t
	}
}

// LastMonth reports whether the type carries its own calendar window.
func (t ReportType) LastMonth() bool {
	return t == ReportTypeLastMonthBorrowing || t == ReportTypeLastMonthOverdue
}

type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatCSV  ReportFormat = "csv"
)

// ParseReportFormat maps a boundary string onto a supported output format.
// An empty string selects the xlsx default.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(s); f {
	case "":
		return ReportFormatXLSX, nil
	case ReportFormatXLSX, ReportFormatCSV:
		return f, nil
	default:
		return "", NewValidationError("unsupported report format %q", s)
	}
}

func (f ReportFormat) MIMEType() string {
	if f == ReportFormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f ReportFormat) Ext() string {
	return string(f)
}

// DateRange is an inclusive period used to scope records.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates the start <= end invariant before any query runs.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, NewValidationError(
			"invalid date range: start (%s) is after end (%s)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// ReportRow is one flat record of an exported report. Book and borrower
// fields are flattened with prefixed names, never nested.
type ReportRow map[string]string

// Report is the formatted row set for one report request, with the column
// order the encoders must preserve.
type Report struct {
	Type    ReportType
	Columns []string
	Rows    []ReportRow
}

// ReportFile is the encoded result handed back to the caller.
type ReportFile struct {
	Data     []byte
	MIMEType string
	Filename string
}

// ReportRequest describes one report generation request. BorrowerID is empty
// when the requester is an administrator and sees all records.
type ReportRequest struct {
	StartDate  time.Time
	EndDate    time.Time
	Type       ReportType
	Format     ReportFormat
	BorrowerID string
}
