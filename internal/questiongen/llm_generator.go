package questiongen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/session"
)

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

func (g *LLMGenerator) call(ctx context.Context, purpose string, req llm.Request) (string, error) {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", purpose, err)
	}
	return resp.Text(), nil
}

func (g *LLMGenerator) Question(ctx context.Context, in QuestionInput) (string, error) {
	user := buildQuestionMessage(in, g.config)
	req := llm.UserPrompt(questionSystem, user, g.config.QuestionTemperature, g.config.QuestionMaxTokens)

	text, err := g.call(ctx, llm.PurposeQuestion, req)
	if err != nil {
		return "", err
	}

	var reason string
	switch {
	case isDuplicate(cleanQuestion(text), in.Asked):
		reason = "That question was already asked. Ask a different question on a different topic."
	case g.config.StrictQuestions && hasPreamble(text):
		reason = "Reply with the question text only. No introduction."
	}

	if reason != "" {
		g.logger.Debug("re-prompting question", zap.String("reason", reason))
		req.Messages = append(req.Messages,
			llm.Message{Role: llm.RoleAssistant, Content: text},
			llm.Message{Role: llm.RoleUser, Content: reason},
		)
		if text, err = g.call(ctx, llm.PurposeQuestion, req); err != nil {
			return "", err
		}
	}

	q := cleanQuestion(text)
	if q == "" {
		return "", fmt.Errorf("question generation failed: %w", &llm.ErrInvalidResponse{Err: fmt.Errorf("empty question")})
	}
	if isDuplicate(q, in.Asked) {
		return "", ErrDuplicateQuestion
	}
	return q, nil
}

func (g *LLMGenerator) Hint(ctx context.Context, level session.Level, question string) (string, error) {
	req := llm.UserPrompt(hintSystem, buildHintMessage(level, question), g.config.GradingTemperature, g.config.HintMaxTokens)
	text, err := g.call(ctx, llm.PurposeHint, req)
	if err != nil {
		return "", err
	}
	return clipWords(cleanQuestion(text), g.config.HintMaxWords), nil
}

func (g *LLMGenerator) Evaluate(ctx context.Context, level session.Level, question, answer string) (string, error) {
	req := llm.UserPrompt(evaluationSystem, buildEvaluationMessage(level, question, answer), g.config.GradingTemperature, g.config.EvalMaxTokens)
	return g.call(ctx, llm.PurposeEvaluation, req)
}

func (g *LLMGenerator) IdealAnswer(ctx context.Context, level session.Level, question string) (string, error) {
	req := llm.UserPrompt(idealSystem, buildIdealMessage(level, question), g.config.GradingTemperature, g.config.IdealMaxTokens)
	return g.call(ctx, llm.PurposeIdealAnswer, req)
}

func (g *LLMGenerator) SkillScores(ctx context.Context, level session.Level, turns []TurnSummary) (Scores, error) {
	req := llm.UserPrompt(scoresSystem, buildScoresMessage(level, turns), g.config.GradingTemperature, g.config.ScoresMaxTokens)
	req.Schema = SkillScoresSchema

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeSkillScores), req)
	if err != nil {
		return Scores{}, fmt.Errorf("skill score generation failed: %w", err)
	}
	return ParseScores(resp.Content)
}
