package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/report"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/transcribe"
)

const (
	PromptRetry  = "Retry"
	PromptFinish = "Finish and see the report"
	PromptQuit   = "Quit without a report"
	PromptSkip   = "Skip"
	PromptKeep   = "Keep this report"

	cmdHint   = ":hint"
	cmdBack   = ":back"
	cmdFinish = ":finish"
	cmdQuit   = ":quit"
	cmdVoice  = ":voice "
)

var practiceCmd = &cobra.Command{
	Use:   "practice <documents...>",
	Short: "Run an interview in plain terminal mode",
	Long: `Run a practice interview without the full-screen interface.

At the answer prompt, leave the line empty to skip, or type one of:
  :hint            get a hint for the current question
  :back            return to the previous question
  :voice <file>    transcribe a recorded answer
  :finish          end the interview and compile the report
  :quit            leave without a report`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("level", "", "interview level: internship or job (default from config)")
	practiceCmd.Flags().Int("questions", 0, "number of questions (default from config)")
	practiceCmd.Flags().String("export", "", "write the report as markdown to this file")
	practiceCmd.Flags().Bool("no-review", false, "do not ask for a rating at the end")
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := buildDeps(ctx, false)
	if err != nil {
		return err
	}
	defer d.Close()
	if d.ctrl == nil {
		return fmt.Errorf("model provider: %w", d.llmErr)
	}

	settings, err := practiceSettings(cmd, d)
	if err != nil {
		return err
	}

	files, diags := documents.LoadFiles(args)
	res, err := d.ctrl.Start(ctx, settings, files)
	for _, diag := range append(diags, res.Diagnostics...) {
		fmt.Fprintln(os.Stderr, diag.Message())
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s interview, %d questions. Empty answer skips; :hint, :back, :voice <file>, :finish, :quit.\n\n",
		settings.Level, settings.Questions)

	quit, err := interviewLoop(ctx, d.ctrl)
	if err != nil || quit {
		d.ctrl.Reset(ctx)
		return err
	}

	rep, err := showReport(ctx, d.ctrl)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if err := os.WriteFile(path, []byte(rep.Markdown()), 0o644); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", path)
	}

	if noReview, _ := cmd.Flags().GetBool("no-review"); !noReview {
		if err := askReview(ctx, d.ctrl, d.store.ReviewRepo()); err != nil {
			d.log.Warn("review not saved", zap.Error(err))
			fmt.Fprintln(os.Stderr, "Review not saved:", err)
		}
	}

	d.ctrl.Reset(ctx)
	return nil
}

// showReport prints the report and offers to retry the parts whose calls
// failed until it is complete or the user keeps it.
func showReport(ctx context.Context, ctrl *interview.Controller) (*report.Report, error) {
	rep, err := ctrl.Report(ctx)
	for err == nil {
		fmt.Println()
		fmt.Print(rep.Render())
		if !rep.Incomplete() {
			break
		}
		choice, _, perr := (&promptui.Select{
			Label: "Some feedback could not be generated",
			Items: []string{PromptRetry, PromptKeep},
		}).Run()
		if perr != nil || choice == 1 {
			break
		}
		rep, err = ctrl.RetryReport(ctx)
	}
	return rep, err
}

func practiceSettings(cmd *cobra.Command, d *deps) (interview.Settings, error) {
	level, err := d.cfg.Level()
	if err != nil {
		return interview.Settings{}, err
	}
	if v, _ := cmd.Flags().GetString("level"); v != "" {
		if level, err = session.ParseLevel(v); err != nil {
			return interview.Settings{}, err
		}
	}

	count := d.cfg.Interview.Questions
	if v, _ := cmd.Flags().GetInt("questions"); v != 0 {
		count = v
	}
	if count < session.MinQuestions || count > session.MaxQuestions {
		return interview.Settings{}, session.ErrQuestionCount
	}
	return interview.Settings{Level: level, Questions: count}, nil
}

// interviewLoop asks questions until the session reaches report phase. It
// reports true when the user quit.
func interviewLoop(ctx context.Context, ctrl *interview.Controller) (bool, error) {
	for {
		turn, err := ctrl.Current(ctx)
		if err != nil {
			fmt.Println(questiongen.Degraded(err))
			choice, _, perr := (&promptui.Select{
				Label: "The question could not be generated",
				Items: []string{PromptRetry, PromptFinish, PromptQuit},
			}).Run()
			if perr != nil {
				return true, promptErr(perr)
			}
			switch choice {
			case 1:
				if _, err := ctrl.Finish(ctx); err != nil {
					fmt.Println(questiongen.Degraded(err))
				}
			case 2:
				return true, nil
			}
			continue
		}
		if turn == nil {
			return false, nil
		}

		sess := ctrl.Session()
		q, _ := turn.Question.Get()
		fmt.Printf("── Question %d/%d (%s) ──\n%s\n", sess.Cursor+1, sess.PlannedCount, turn.Source, q)

		quit, err := answerTurn(ctx, ctrl, turn)
		if err != nil || quit {
			return quit, err
		}
		fmt.Println()
	}
}

// answerTurn reads input for the current turn until the cursor moves.
func answerTurn(ctx context.Context, ctrl *interview.Controller, turn *session.Turn) (bool, error) {
	for {
		line, err := (&promptui.Prompt{Label: "Your answer", Default: turn.Answer, AllowEdit: true}).Run()
		if err != nil {
			return true, promptErr(err)
		}
		line = strings.TrimSpace(line)

		switch {
		case line == cmdQuit:
			return true, nil

		case line == cmdHint:
			h, err := ctrl.Hint(ctx)
			if err != nil {
				fmt.Println(h)
				continue
			}
			fmt.Println("Hint:", h)

		case line == cmdBack:
			if !ctrl.Retreat() {
				fmt.Println("Already at the first question.")
				continue
			}
			return false, nil

		case line == cmdFinish:
			if _, err := ctrl.Finish(ctx); err != nil {
				fmt.Println("Evaluation will be retried in the report:", err)
			}
			return false, nil

		case strings.HasPrefix(line, cmdVoice):
			cp, err := interview.CaptureFromFile(strings.TrimSpace(strings.TrimPrefix(line, cmdVoice)))
			if err != nil {
				fmt.Println(err)
				continue
			}
			if _, err := ctrl.ApplyCapture(ctx, cp); err != nil {
				if errors.Is(err, transcribe.ErrLowConfidence) {
					fmt.Println("Could not make out the recording. Try again or type your answer.")
				} else {
					fmt.Println("Transcription failed:", err)
				}
				continue
			}
			fmt.Println("Transcribed:", turn.Answer)
			return advance(ctx, ctrl)

		default:
			ctrl.RecordAnswer(line)
			if line == "" {
				fmt.Println("(skipped)")
			}
			return advance(ctx, ctrl)
		}
	}
}

func advance(ctx context.Context, ctrl *interview.Controller) (bool, error) {
	if _, err := ctrl.Advance(ctx); err != nil {
		fmt.Println("Evaluation will be retried in the report:", err)
	}
	return false, nil
}

func askReview(ctx context.Context, ctrl *interview.Controller, repo store.ReviewRepo) error {
	items := []string{PromptSkip}
	for i := 5; i >= 1; i-- {
		items = append(items, strconv.Itoa(i)+" "+strings.Repeat("★", i))
	}
	idx, _, err := (&promptui.Select{Label: "Rate this session", Items: items}).Run()
	if err != nil {
		return promptErr(err)
	}
	if idx == 0 {
		return nil
	}
	rating := 6 - idx

	comment, err := (&promptui.Prompt{Label: "Comment (optional)"}).Run()
	if err != nil {
		return promptErr(err)
	}

	id, err := repo.SaveReview(ctx, ctrl.ReviewTuple(rating, strings.TrimSpace(comment)))
	if err != nil {
		return err
	}
	fmt.Printf("Thanks! Review #%d saved.\n", id)
	return nil
}

// promptErr maps an interrupted prompt to a clean exit.
func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
