package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quote-run-service/internal/app"
	"quote-run-service/internal/config"
	"quote-run-service/internal/domain"
)

// NewPlayCmd runs today's set interactively on the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var playerID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's run in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			service, cleanup, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return runPlay(cmd.Context(), service, playerID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&playerID, "player", "local", "player id whose progress is used")
	return cmd
}

// runPlay reads one line per action: an answer, /hint1, /hint2 or /quit.
func runPlay(ctx context.Context, service *app.GameService, playerID string, in io.Reader, out io.Writer) error {
	session, err := service.Open(ctx, playerID)
	if err != nil {
		fmt.Fprintln(out, "Could not load quotes.")
		return err
	}

	fmt.Fprintf(out, "QuoteRun #%d\n", session.RunID())
	if items := session.Yesterday(); len(items) > 0 {
		fmt.Fprintln(out, "Yesterday's answers:")
		for _, it := range items {
			year := ""
			if it.Year != 0 {
				year = fmt.Sprintf(" (%d)", it.Year)
			}
			fmt.Fprintf(out, "  %d. “%s” — %s%s\n", it.Index, it.Quote, it.Title, year)
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		view := session.View()
		if view.Completed {
			printResult(out, session, view)
			return nil
		}
		fmt.Fprintf(out, "\n%d / %d  “%s”\n> ", view.Index+1, view.Total, view.Quote.Text)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "/quit":
			return nil
		case "/hint1", "/hint2":
			slot := 1
			if strings.TrimSpace(line) == "/hint2" {
				slot = 2
			}
			res, err := session.RevealHint(ctx, slot)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "Hint %d: %s (hints used: %d)\n", res.Slot, res.Text, res.HintsUsed)
			continue
		}

		res, err := session.SubmitAnswer(ctx, line)
		if errors.Is(err, domain.ErrEmptyAnswer) {
			fmt.Fprintln(out, res.Status)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Status)
	}
}

func printResult(out io.Writer, session *app.Session, view app.RunView) {
	fmt.Fprintln(out, "\nToday’s run is complete.")
	fmt.Fprintln(out, view.Result)
	if view.Closer != nil {
		fmt.Fprintf(out, "“%s” — %s\n", view.Closer.Quote, view.Closer.Source)
	}
	if text, err := session.ShareText(); err == nil {
		fmt.Fprintf(out, "\n%s\n", text)
	}
}
