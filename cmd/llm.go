package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		sessionID, _ := cmd.Flags().GetString("session")

		return withStore(cmd.Context(), func(s *store.Store) error {
			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
				Limit:     limit,
				Purpose:   purpose,
				SessionID: sessionID,
			})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No model calls recorded.")
				return nil
			}

			fmt.Printf("%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Println(rule(100))
			for _, e := range events {
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Printf("%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of a model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd.Context(), func(s *store.Store) error {
			e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Printf("ID:        %d\n", e.ID)
			fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Session:   %s\n", orDash(e.SessionID))
			fmt.Printf("Provider:  %s\n", e.Provider)
			fmt.Printf("Model:     %s\n", e.Model)
			fmt.Printf("Purpose:   %s\n", e.Purpose)
			fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:   %dms\n", e.LatencyMs)
			fmt.Printf("Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Printf("Error:     %s\n", e.ErrorMessage)
			}

			section("REQUEST", e.RequestBody)
			section("RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			ctx := cmd.Context()
			usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(usage) == 0 {
				fmt.Println("No model usage recorded yet.")
				return nil
			}

			fmt.Println("Usage by Purpose")
			fmt.Println(rule(72))
			fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
			fmt.Println(rule(72))

			var calls, in, out int
			for _, u := range usage {
				fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
					u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
				calls += u.Calls
				in += u.InputTokens
				out += u.OutputTokens
			}
			fmt.Println(rule(72))
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

			byModel, err := s.EventRepo().LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(byModel) == 0 {
				return nil
			}

			fmt.Println()
			fmt.Println("Estimated Cost (USD)")
			fmt.Println(rule(72))
			fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
			fmt.Println(rule(72))

			var total float64
			var unpriced []string
			for _, m := range byModel {
				price := llm.LookupCost(m.Model)
				if price == nil {
					unpriced = append(unpriced, m.Model)
					fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
						truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, "?")
					continue
				}
				c := price.Cost(m.InputTokens, m.OutputTokens)
				total += c
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, formatCost(c))
			}

			fmt.Println(rule(72))
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "filter by purpose (question, hint, evaluation, ideal-answer, skill-scores)")
	llmListCmd.Flags().String("session", "", "filter by session ID")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

func section(title, body string) {
	fmt.Println()
	fmt.Println(rule(60))
	fmt.Println(title)
	fmt.Println(rule(60))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
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
