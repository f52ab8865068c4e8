package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
)

// AnalyticsHandler renders a period analytics result.
type AnalyticsHandler interface {
	Handle(analytics *domain.PeriodAnalytics) error
}

type AnalyticsCmd struct {
	startDate string
	endDate   string
	generator reporting.Generator
	handler   AnalyticsHandler
}

func NewAnalyticsCmd(generator reporting.Generator, handler AnalyticsHandler) *cobra.Command {
	ac := &AnalyticsCmd{generator: generator, handler: handler}
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print borrowing analytics for a period",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.startDate, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.endDate, "end", "", "Period end (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (ac *AnalyticsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	start, err := time.Parse(dateLayout, ac.startDate)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(dateLayout, ac.endDate)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	analytics, err := ac.generator.GetPeriodAnalytics(ctx, start, end, "")
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	return ac.handler.Handle(analytics)
}
