package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
)

const dateLayout = "2006-01-02"

type ExportCmd struct {
	reportType string
	format     string
	startDate  string
	endDate    string
	output     string
	generator  reporting.Generator
}

func NewExportCmd(generator reporting.Generator) *cobra.Command {
	ec := &ExportCmd{generator: generator}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report to a file",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.reportType, "type", "", "Report type (borrowing, overdue, inventory, last_month_borrowing, last_month_overdue)")
	cmd.Flags().StringVar(&ec.format, "format", "xlsx", "Output format (xlsx or csv)")
	cmd.Flags().StringVar(&ec.startDate, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ec.endDate, "end", "", "Period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ec.output, "output", "", "Output path (defaults to the suggested filename)")

	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	reportType, err := domain.ParseReportType(ec.reportType)
	if err != nil {
		return err
	}
	format, err := domain.ParseReportFormat(ec.format)
	if err != nil {
		return err
	}

	req := domain.ReportRequest{Type: reportType, Format: format}
	if !reportType.LastMonth() {
		if req.StartDate, err = time.Parse(dateLayout, ec.startDate); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		if req.EndDate, err = time.Parse(dateLayout, ec.endDate); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	}

	file, err := ec.generator.GenerateReport(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	path := ec.output
	if path == "" {
		path = file.Filename
	}
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmd.Printf("wrote %s (%d bytes)\n", path, len(file.Data))
	return nil
}
