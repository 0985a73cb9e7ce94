package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/logger"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview <documents...>",
	Short: "Preview generated questions for a set of documents (no database)",
	Long: `Classify the documents and print the questions an interview would ask.

This is a stateless tool: no database, no session events, no review.
Useful for checking how well a document grounds questions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("level", "", "interview level: internship or job (default from config)")
	previewCmd.Flags().Int("count", 3, "number of questions to generate")
	previewCmd.Flags().Bool("answers", false, "also print a model answer for each question")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("level"); v != "" {
		if level, err = session.ParseLevel(v); err != nil {
			return err
		}
	}
	count, _ := cmd.Flags().GetInt("count")
	withAnswers, _ := cmd.Flags().GetBool("answers")

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// No EventRepo: model calls are logged but not stored.
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, cfg.Generator(), log)

	files, diags := documents.LoadFiles(args)
	res := documents.NewClassifier(documents.AutoReader{}, cfg.Documents, log).Classify(ctx, files)
	for _, d := range append(diags, res.Diagnostics...) {
		fmt.Fprintln(os.Stderr, d.Message())
	}
	if !res.Usable() {
		return fmt.Errorf("nothing to ask about: no document yielded usable text")
	}

	sess, err := session.New(level, count, res.Study, res.Resume)
	if err != nil {
		return err
	}
	selector, err := session.NewSelector(cfg.Interview.SourcePolicy, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Level: %s   study: %d chars   résumé: %d chars\n", level, len(res.Study), len(res.Resume))
	fmt.Printf("Generating %d questions...\n\n", count)

	for i := range count {
		src := selector.Choose(level, sess.StudyContext, sess.ResumeContext, i)
		primary, secondary := sess.Context(src)

		q, err := gen.Question(ctx, questiongen.QuestionInput{
			Level:     level,
			Source:    src,
			Primary:   primary,
			Secondary: secondary,
			Asked:     sess.Asked(),
		})
		if err != nil {
			fmt.Printf("Question %d: %s\n\n", i+1, questiongen.Degraded(err))
			continue
		}
		sess.Turns[i].SetQuestion(q, src)

		fmt.Printf("── Question %d/%d (%s) ──\n%s\n", i+1, count, src, q)
		if withAnswers {
			ideal, err := gen.IdealAnswer(ctx, level, q)
			if err != nil {
				ideal = questiongen.Degraded(err)
			}
			fmt.Printf("\nModel answer:\n%s\n", ideal)
		}
		fmt.Println()
	}
	return nil
}
