package reports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/handlers/respond"
	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/server/middleware"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
)

const dateLayout = "2006-01-02"

type Handler struct {
	generator reporting.Generator
}

func NewHandler(generator reporting.Generator) *Handler {
	return &Handler{generator: generator}
}

// GenerateReport handles POST /api/reports/generate.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var body api.GenerateReportRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	reportType, err := domain.ParseReportType(body.ReportType)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	format, err := domain.ParseReportFormat(body.Format)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	req := domain.ReportRequest{
		Type:       reportType,
		Format:     format,
		BorrowerID: scopedBorrowerID(r),
	}
	if !reportType.LastMonth() {
		if req.StartDate, err = parseDate(body.StartDate, "start_date"); err != nil {
			respond.Error(w, r, err)
			return
		}
		if req.EndDate, err = parseDate(body.EndDate, "end_date"); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	file, err := h.generator.GenerateReport(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	writeFile(w, r, file)
}

// GetStatistics handles GET /api/reports/statistics.
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.generator.GetStatistics(r.Context(), scopedBorrowerID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapAnalyticsSummaryDomainToApi(*summary))
}

// GetPeriodAnalytics handles POST /api/reports/analytics.
func (h *Handler) GetPeriodAnalytics(w http.ResponseWriter, r *http.Request) {
	var body api.AnalyticsRequest
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	start, err := parseDate(body.StartDate, "start_date")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	end, err := parseDate(body.EndDate, "end_date")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	analytics, err := h.generator.GetPeriodAnalytics(r.Context(), start, end, scopedBorrowerID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapPeriodAnalyticsDomainToApi(*analytics))
}

// ExportLastMonthOverdue handles GET /api/reports/export/last-month-overdue.
func (h *Handler) ExportLastMonthOverdue(w http.ResponseWriter, r *http.Request) {
	h.exportLastMonth(w, r, h.generator.ExportLastMonthOverdue)
}

// ExportLastMonthBorrowing handles GET /api/reports/export/last-month-borrowing.
func (h *Handler) ExportLastMonthBorrowing(w http.ResponseWriter, r *http.Request) {
	h.exportLastMonth(w, r, h.generator.ExportLastMonthBorrowing)
}

func (h *Handler) exportLastMonth(
	w http.ResponseWriter,
	r *http.Request,
	export func(ctx context.Context, format domain.ReportFormat) (*domain.ReportFile, error),
) {
	format, err := domain.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	file, err := export(r.Context(), format)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	writeFile(w, r, file)
}

func writeFile(w http.ResponseWriter, r *http.Request, file *domain.ReportFile) {
	w.Header().Set("Content-Type", file.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Pragma", "no-cache")

	if _, err := w.Write(file.Data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write report body")
	}
}

// scopedBorrowerID narrows the fetch to the requester's own records unless
// the requester is an administrator.
func scopedBorrowerID(r *http.Request) string {
	borrower, ok := middleware.BorrowerFromContext(r.Context())
	if !ok || borrower.IsAdmin {
		return ""
	}
	return borrower.ID
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.NewValidationError("%s is required", field)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("%s must use the %s form", field, dateLayout)
	}
	return t, nil
}
