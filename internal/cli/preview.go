package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"quote-run-service/internal/config"
	"quote-run-service/internal/domain"
)

// NewPreviewCmd prints a day's set for curation.
func NewPreviewCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the quote set for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), *configPath, date, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to preview as YYYY-MM-DD (default today)")
	return cmd
}

func runPreview(ctx context.Context, configPath, date string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	service, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if date == "" {
		date = service.Calendar().DayKey(time.Now())
	}
	dayIndex, set, err := service.DailySet(ctx, date)
	if err != nil {
		return err
	}
	writePreview(out, date, dayIndex+1, set)
	return nil
}

func writePreview(out io.Writer, date string, runID int, set []domain.Quote) {
	fmt.Fprintf(out, "QuoteRun #%d (%s)\n", runID, date)
	for i, q := range set {
		fmt.Fprintf(out, "%d. [tier %d] %s  %q\n", i+1, q.EffectiveTier(), q.Display, q.Quote)
	}
	if len(set) < domain.SetSize {
		fmt.Fprintf(out, "warning: pool only fills %d of %d slots\n", len(set), domain.SetSize)
	}
}
