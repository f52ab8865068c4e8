package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/export"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

const defaultTopN = 5

// Generator orchestrates report generation and analytics over the borrowing
// history.
type Generator interface {
	GenerateReport(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error)
	ExportLastMonthBorrowing(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error)
	ExportLastMonthOverdue(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error)
	GetStatistics(ctx context.Context, borrowerID string) (*domain.AnalyticsSummary, error)
	GetPeriodAnalytics(ctx context.Context, start, end time.Time, borrowerID string) (*domain.PeriodAnalytics, error)
}

type generator struct {
	borrowing postgres.BorrowingStore
	books     postgres.BookStore
	encoder   export.Encoder
	now       func() time.Time
}

type GeneratorOption func(*generator)

// WithClock overrides the wall clock, pinning "now" for the last-month window
// and overdue math.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *generator) {
		g.now = now
	}
}

func NewGenerator(
	borrowing postgres.BorrowingStore,
	books postgres.BookStore,
	encoder export.Encoder,
	opts ...GeneratorOption,
) Generator {
	g := &generator{
		borrowing: borrowing,
		books:     books,
		encoder:   encoder,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *generator) GenerateReport(ctx context.Context, req domain.ReportRequest) (*domain.ReportFile, error) {
	now := g.now()

	period, err := ResolvePeriod(req, now)
	if err != nil {
		return nil, err
	}

	rows, err := g.fetchAndFormat(ctx, req, period, now)
	if err != nil {
		return nil, err
	}

	report := domain.Report{
		Type:    req.Type,
		Columns: ReportColumns(req.Type),
		Rows:    rows,
	}

	data, err := g.encoder.Encode(report, req.Format)
	if err != nil {
		return nil, fmt.Errorf("encode %s report: %w", req.Type, err)
	}

	filenameDate := period.Start
	if req.Type.LastMonth() {
		filenameDate = now
	}

	return &domain.ReportFile{
		Data:     data,
		MIMEType: req.Format.MIMEType(),
		Filename: fmt.Sprintf("%s-report-%s.%s", req.Type, filenameDate.Format(dateLayout), req.Format.Ext()),
	}, nil
}

func (g *generator) fetchAndFormat(
	ctx context.Context,
	req domain.ReportRequest,
	period domain.DateRange,
	now time.Time,
) ([]domain.ReportRow, error) {
	switch req.Type.Base() {
	case domain.ReportTypeBorrowing:
		records, err := g.borrowing.GetBorrowingHistory(ctx, period.Start, period.End, req.BorrowerID)
		if err != nil {
			return nil, fmt.Errorf("fetch borrowing history: %w", err)
		}
		return FormatReportData(adapters.MapBorrowingRecordsStoreToDomain(records), req.Type, now), nil

	case domain.ReportTypeOverdue:
		records, err := g.borrowing.GetOverdue(ctx, period.Start, period.End, req.BorrowerID)
		if err != nil {
			return nil, fmt.Errorf("fetch overdue records: %w", err)
		}
		return FormatReportData(adapters.MapBorrowingRecordsStoreToDomain(records), req.Type, now), nil

	case domain.ReportTypeInventory:
		books, err := g.books.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch inventory: %w", err)
		}
		mapped := make([]domain.Book, 0, len(books))
		for _, b := range books {
			mapped = append(mapped, adapters.MapBookStoreToDomain(b))
		}
		return FormatInventoryData(mapped), nil

	default:
		return nil, domain.NewValidationError("unrecognized report type %q", req.Type)
	}
}

func (g *generator) ExportLastMonthBorrowing(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error) {
	return g.GenerateReport(ctx, domain.ReportRequest{
		Type:   domain.ReportTypeLastMonthBorrowing,
		Format: format,
	})
}

func (g *generator) ExportLastMonthOverdue(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error) {
	return g.GenerateReport(ctx, domain.ReportRequest{
		Type:   domain.ReportTypeLastMonthOverdue,
		Format: format,
	})
}

func (g *generator) GetStatistics(ctx context.Context, borrowerID string) (*domain.AnalyticsSummary, error) {
	records, err := g.borrowing.GetAll(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("fetch borrowing records: %w", err)
	}

	summary := GenerateAnalytics(adapters.MapBorrowingRecordsStoreToDomain(records))
	return &summary, nil
}

func (g *generator) GetPeriodAnalytics(
	ctx context.Context,
	start, end time.Time,
	borrowerID string,
) (*domain.PeriodAnalytics, error) {
	period, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := g.borrowing.GetBorrowingHistory(ctx, period.Start, period.End, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("fetch borrowing history: %w", err)
	}

	mapped := adapters.MapBorrowingRecordsStoreToDomain(records)
	return &domain.PeriodAnalytics{
		Period:       period,
		Summary:      GenerateAnalytics(mapped),
		TopBooks:     GetTopBooks(mapped, defaultTopN),
		TopBorrowers: GetTopBorrowers(mapped, defaultTopN),
	}, nil
}
