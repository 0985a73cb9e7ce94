package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockprep/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all reviews and recorded events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			_, answer, err := (&promptui.Select{
				Label: "Delete every review and recorded event?",
				Items: []string{PromptNo, PromptYes},
			}).Run()
			if err != nil {
				return promptErr(err)
			}
			if answer != PromptYes {
				fmt.Println("Nothing deleted.")
				return nil
			}
		}

		return withStore(cmd.Context(), func(s *store.Store) error {
			if err := s.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset store: %w", err)
			}
			fmt.Println("All data deleted.")
			return nil
		})
	},
}

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
