package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockprep/internal/store"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List saved session reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withStore(cmd.Context(), func(s *store.Store) error {
			reviews, err := s.ReviewRepo().ListReviews(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list reviews: %w", err)
			}
			if len(reviews) == 0 {
				fmt.Println("No reviews yet. Finish an interview and rate it.")
				return nil
			}

			fmt.Printf("%-5s  %-16s  %-10s  %-6s  %-5s  %s\n", "ID", "Date", "Level", "Rating", "Score", "Comment")
			fmt.Println(rule(90))
			for _, r := range reviews {
				fmt.Printf("%-5d  %-16s  %-10s  %-6s  %5.1f  %s\n",
					r.ID,
					r.Timestamp.Local().Format("2006-01-02 15:04"),
					r.Level,
					strings.Repeat("★", r.Rating),
					r.AverageScore,
					truncate(r.Comment, 40),
				)
			}
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		return withStore(cmd.Context(), func(s *store.Store) error {
			ctx := cmd.Context()
			st, err := s.ReviewRepo().Stats(ctx)
			if err != nil {
				return fmt.Errorf("review stats: %w", err)
			}

			fmt.Println("Reviews")
			fmt.Println(rule(40))
			if st.Count == 0 {
				fmt.Println("No reviews yet.")
			} else {
				fmt.Printf("%-18s %d\n", "Count", st.Count)
				fmt.Printf("%-18s %.1f / 5\n", "Average rating", st.AvgRating)
				fmt.Printf("%-18s %.1f / 10\n", "Average score", st.AvgScore)
				for _, level := range slices.Sorted(maps.Keys(st.ByLevelCount)) {
					fmt.Printf("%-18s %d\n", level, st.ByLevelCount[level])
				}
			}

			opts := store.QueryOpts{}
			if days > 0 {
				opts.From = time.Now().AddDate(0, 0, -days)
			}
			events, err := s.EventRepo().QuerySessionEvents(ctx, opts)
			if err != nil {
				return fmt.Errorf("session events: %w", err)
			}

			var started, finished, reset, answered, asked int
			for _, e := range events {
				switch e.Action {
				case store.SessionActionStart:
					started++
				case store.SessionActionFinish:
					finished++
					answered += e.Answered
					asked += e.QuestionsAsked
				case store.SessionActionReset:
					reset++
				}
			}

			fmt.Println()
			if days > 0 {
				fmt.Printf("Sessions (last %d days)\n", days)
			} else {
				fmt.Println("Sessions")
			}
			fmt.Println(rule(40))
			fmt.Printf("%-18s %d\n", "Started", started)
			fmt.Printf("%-18s %d\n", "Finished", finished)
			fmt.Printf("%-18s %d\n", "Reset", reset)
			fmt.Printf("%-18s %d / %d\n", "Answered", answered, asked)
			return nil
		})
	},
}

func init() {
	reviewsCmd.Flags().IntP("limit", "n", 20, "number of reviews to show (0 for all)")
	statsCmd.Flags().Int("days", 0, "only count sessions from the last N days (0 for all time)")
}
