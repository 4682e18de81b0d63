package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

// openStore opens only the database; the llm commands need no provider.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbCfg, err := cfg.DatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	s, err := store.OpenWith(cmd.Context(), dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if purpose != "" {
			kept := events[:0]
			for _, e := range events {
				if e.Purpose == purpose {
					kept = append(kept, e)
				}
			}
			events = kept
		}

		return emit(cmd, events, func(w io.Writer) {
			if len(events) == 0 {
				fmt.Fprintln(w, "No LLM events found.")
				return
			}
			t := newTable("ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				ok := theme.Good.Render("✓")
				if !e.Success {
					ok = theme.Bad.Render("✗")
				}
				t.Row(
					fmt.Sprint(e.ID),
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					fmt.Sprint(e.InputTokens),
					fmt.Sprint(e.OutputTokens),
					fmt.Sprint(e.LatencyMs),
					ok,
				)
			}
			lipgloss.Fprintln(w, t.String())
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		return emit(cmd, e, func(w io.Writer) {
			heading(w, fmt.Sprintf("LLM event %d", e.ID), e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			field(w, "Provider", e.Provider)
			field(w, "Model", e.Model)
			field(w, "Purpose", e.Purpose)
			field(w, "Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
			field(w, "Latency", fmt.Sprintf("%dms", e.LatencyMs))
			field(w, "Success", fmt.Sprint(e.Success))
			if e.ErrorMessage != "" {
				lipgloss.Fprintln(w, theme.Bad.Render("Error: "+e.ErrorMessage))
			}

			for _, section := range []struct{ title, body string }{
				{"REQUEST", e.RequestBody},
				{"RESPONSE", e.ResponseBody},
			} {
				fmt.Fprintln(w)
				lipgloss.Fprintln(w, theme.Label.Render(section.title))
				body := section.body
				if body == "" {
					body = theme.Hint.Render("(not captured)")
				}
				lipgloss.Fprintln(w, theme.Card.Render(body))
			}
		})
	},
}

type usageReport struct {
	ByPurpose []store.PurposeUsage `json:"byPurpose"`
	ByModel   []modelCostRow       `json:"byModel"`
	TotalCost float64              `json:"totalCostUsd"`
	Unpriced  []string             `json:"unpricedModels,omitempty"`
}

type modelCostRow struct {
	store.ModelUsage
	CostUSD *float64 `json:"costUsd"`
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		rep := usageReport{ByPurpose: byPurpose}
		for _, mu := range byModel {
			row := modelCostRow{ModelUsage: mu}
			if cost := llm.LookupCost(mu.Model); cost != nil {
				c := cost.Cost(mu.InputTokens, mu.OutputTokens)
				row.CostUSD = &c
				rep.TotalCost += c
			} else {
				rep.Unpriced = append(rep.Unpriced, mu.Model)
			}
			rep.ByModel = append(rep.ByModel, row)
		}

		return emit(cmd, rep, func(w io.Writer) { renderUsage(w, rep) })
	},
}

func renderUsage(w io.Writer, rep usageReport) {
	if len(rep.ByPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	heading(w, "Usage by purpose", "")
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	var totalCalls, totalIn, totalOut int
	for _, st := range rep.ByPurpose {
		t.Row(st.Purpose, fmt.Sprint(st.Calls), fmt.Sprint(st.InputTokens), fmt.Sprint(st.OutputTokens),
			fmt.Sprint(st.InputTokens+st.OutputTokens), fmt.Sprintf("%.0f", st.AvgLatencyMs))
		totalCalls += st.Calls
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}
	t.Row("TOTAL", fmt.Sprint(totalCalls), fmt.Sprint(totalIn), fmt.Sprint(totalOut), fmt.Sprint(totalIn+totalOut), "")
	lipgloss.Fprintln(w, t.String())

	if len(rep.ByModel) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading(w, "Estimated cost (USD)", "")
	t = newTable("Model", "Calls", "Input", "Output", "Cost")
	for _, row := range rep.ByModel {
		cost := "?"
		if row.CostUSD != nil {
			cost = formatCost(*row.CostUSD)
		}
		t.Row(truncate(row.Model, 32), fmt.Sprint(row.Calls), fmt.Sprint(row.InputTokens),
			fmt.Sprint(row.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(rep.Unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(rep.TotalCost))
	lipgloss.Fprintln(w, t.String())

	if len(rep.Unpriced) > 0 {
		lipgloss.Fprintln(w, theme.Hint.Render("Pricing unavailable for: "+strings.Join(rep.Unpriced, ", ")))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. skill-gap, learning-plan, career-roadmap, chat, role-compare, role-match, career-risk, hiring-signal)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
