package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronomap/internal/domain"
)

var (
	historyHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	historyDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	outcomeStyles      = map[domain.ReportOutcome]lipgloss.Style{
		domain.OutcomeSubmitted: lipgloss.NewStyle().Foreground(lipgloss.Color("#b8bb26")),
		domain.OutcomeDegraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f")),
		domain.OutcomeCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("#928374")),
		domain.OutcomeDiscarded: lipgloss.NewStyle().Foreground(lipgloss.Color("#928374")),
		domain.OutcomeFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934")),
	}
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past report pipeline outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.History.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No reports recorded yet.")
				return nil
			}
			fmt.Println(renderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}

func renderHistory(entries []*domain.ReportLogEntry) string {
	var b strings.Builder

	b.WriteString(historyHeaderStyle.Render(fmt.Sprintf(
		"%-19s  %-10s  %-9s  %6s  %6s  %s",
		"WHEN", "CHANGESET", "OUTCOME", "HOURS", "FEE", "REPORT")))
	b.WriteString("\n")

	for _, e := range entries {
		outcome := string(e.Outcome)
		if st, ok := outcomeStyles[e.Outcome]; ok {
			outcome = st.Render(fmt.Sprintf("%-9s", outcome))
		}

		report := historyDimStyle.Render("-")
		if e.ReportID != nil {
			report = fmt.Sprintf("%d", *e.ReportID)
		}

		b.WriteString(fmt.Sprintf("%-19s  %-10s  %s  %6.2f  %6.2f  %s",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.WorkUnitID,
			outcome,
			e.Hours,
			e.UsageFee,
			report))
		if e.Detail != "" {
			b.WriteString("  ")
			b.WriteString(historyDimStyle.Render(e.Detail))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
