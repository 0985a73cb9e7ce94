// Package interview drives a practice session turn by turn.
//
// Controller is single-writer: it owns exactly one session and performs no
// locking. Hosts must serialize calls; the TUI screens hold a busy flag while
// a command that uses the controller is in flight.
package interview

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/logger"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/report"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/transcribe"
)

var (
	// ErrInsufficientContext is returned by Start when no document yielded
	// usable text.
	ErrInsufficientContext = errors.New("could not read any text from the uploaded documents; scanned images cannot be used")

	// ErrNoSession is returned by operations that need a started session.
	ErrNoSession = errors.New("no active session")
)

// Settings configures a new session.
type Settings struct {
	Level     session.Level
	Questions int
}

// Controller runs the turn state machine for one session at a time.
type Controller struct {
	gen         questiongen.Generator
	classifier  *documents.Classifier
	selector    session.Selector
	transcriber transcribe.Transcriber
	events      store.EventRepo
	logger      *zap.Logger
	minChars    int
	now         func() time.Time

	sess   *session.Session
	report *report.Report
}

// Option customises a Controller.
type Option func(*Controller)

// WithSelector overrides the deterministic source selector.
func WithSelector(s session.Selector) Option {
	return func(c *Controller) { c.selector = s }
}

// WithTranscriber enables voice answers.
func WithTranscriber(t transcribe.Transcriber, minChars int) Option {
	return func(c *Controller) {
		c.transcriber = t
		c.minChars = minChars
	}
}

// WithEventRepo records session lifecycle events.
func WithEventRepo(r store.EventRepo) Option {
	return func(c *Controller) { c.events = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller with no active session.
func New(gen questiongen.Generator, classifier *documents.Classifier, opts ...Option) *Controller {
	c := &Controller{
		gen:         gen,
		classifier:  classifier,
		selector:    session.Deterministic{},
		transcriber: transcribe.Disabled{},
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = logger.OrNop(c.logger)
	return c
}

// Session returns the active session, or nil. Callers must not mutate it.
func (c *Controller) Session() *session.Session {
	return c.sess
}

// Start classifies the documents and opens a new session. The classifier
// result is returned even on failure so diagnostics can be shown.
func (c *Controller) Start(ctx context.Context, st Settings, files []documents.File) (documents.Result, error) {
	res := c.classifier.Classify(ctx, files)
	if !res.Usable() {
		return res, ErrInsufficientContext
	}

	s, err := session.New(st.Level, st.Questions, res.Study, res.Resume)
	if err != nil {
		return res, err
	}
	s.StartedAt = c.now()
	c.sess = s
	c.report = nil

	c.log().Info("session started",
		zap.String("level", s.Level.String()),
		zap.Int("questions", s.PlannedCount),
		zap.Int("study_chars", len(s.StudyContext)),
		zap.Int("resume_chars", len(s.ResumeContext)))
	c.recordEvent(ctx, store.SessionActionStart)
	return res, nil
}

// Current returns the turn at the cursor, generating its question the first
// time the turn is observed. It returns nil in report phase. When
// generation fails the turn is returned with no question and the error, and
// the next call tries again.
func (c *Controller) Current(ctx context.Context) (*session.Turn, error) {
	if c.sess == nil {
		return nil, ErrNoSession
	}
	turn := c.sess.Current()
	if turn == nil || turn.Reached() {
		return turn, nil
	}
	return turn, c.generate(ctx, turn)
}

func (c *Controller) generate(ctx context.Context, turn *session.Turn) error {
	s := c.sess
	src := c.selector.Choose(s.Level, s.StudyContext, s.ResumeContext, s.Cursor)
	primary, secondary := s.Context(src)

	q, err := c.gen.Question(c.callCtx(ctx), questiongen.QuestionInput{
		Level:     s.Level,
		Source:    src,
		Primary:   primary,
		Secondary: secondary,
		Asked:     s.Asked(),
	})
	if err != nil {
		c.log().Warn("question generation failed", zap.Int(logger.FieldTurn, s.Cursor), zap.Error(err))
		return err
	}
	turn.SetQuestion(q, src)
	c.log().Debug("question generated", zap.Int(logger.FieldTurn, s.Cursor), zap.Stringer("source", src))
	return nil
}

// RecordAnswer overwrites the current turn's answer. It is a no-op, and
// returns false, outside the interview phase or before the question exists.
func (c *Controller) RecordAnswer(text string) bool {
	turn := c.questionedTurn()
	if turn == nil {
		return false
	}
	turn.Answer = text
	return true
}

// Hint generates a fresh hint for the current question, replacing any
// earlier one. On failure the degraded text is stored and returned with
// the error.
func (c *Controller) Hint(ctx context.Context) (string, error) {
	turn := c.questionedTurn()
	if turn == nil {
		return "", ErrNoSession
	}
	q, _ := turn.Question.Get()
	h, err := c.gen.Hint(c.callCtx(ctx), c.sess.Level, q)
	if err != nil {
		h = questiongen.Degraded(err)
	}
	turn.Hint = session.Some(h)
	return h, err
}

// Advance evaluates the current turn if it was answered and not yet graded,
// then moves the cursor forward. It reports false, and stays put, in report
// phase or while the current turn has no question yet, so a turn whose
// generation failed is retried rather than dropped from the report. An
// evaluation error does not stop the move; the report retries.
func (c *Controller) Advance(ctx context.Context) (bool, error) {
	if c.sess == nil || c.sess.InReport() || !c.sess.Current().Reached() {
		return false, nil
	}
	err := c.evaluate(ctx, c.sess.Current())
	c.sess.Cursor++
	if c.sess.InReport() {
		c.enterReport(ctx)
	}
	return true, err
}

// Retreat moves the cursor back one turn. It reports false at the first
// turn and in report phase.
func (c *Controller) Retreat() bool {
	if c.sess == nil || c.sess.InReport() || c.sess.Cursor == 0 {
		return false
	}
	c.sess.Cursor--
	return true
}

// Finish evaluates the current turn like Advance, then jumps straight to
// report phase.
func (c *Controller) Finish(ctx context.Context) (bool, error) {
	if c.sess == nil || c.sess.InReport() {
		return false, nil
	}
	err := c.evaluate(ctx, c.sess.Current())
	c.sess.Cursor = c.sess.PlannedCount
	c.enterReport(ctx)
	return true, err
}

// Report compiles the end-of-session report once and caches it.
func (c *Controller) Report(ctx context.Context) (*report.Report, error) {
	if c.sess == nil {
		return nil, ErrNoSession
	}
	if !c.sess.InReport() {
		return nil, errors.New("session is still in progress")
	}
	if c.report == nil {
		c.report = report.Compile(c.callCtx(ctx), c.sess, c.gen, c.log())
	}
	return c.report, nil
}

// RetryReport recompiles the report when the cached one is incomplete, so
// failed evaluations, ideal answers and skill scores get another attempt.
// A complete report is returned as is.
func (c *Controller) RetryReport(ctx context.Context) (*report.Report, error) {
	if c.report != nil && c.report.Incomplete() {
		c.log().Info("retrying incomplete report")
		c.report = nil
	}
	return c.Report(ctx)
}

// ReviewTuple packages the user's rating of the session for the review
// store.
func (c *Controller) ReviewTuple(rating int, comment string) store.Review {
	if c.sess == nil {
		return store.Review{Rating: rating, Comment: comment}
	}
	return store.Review{
		SessionID:    c.sess.ID,
		Level:        c.sess.Level.String(),
		Rating:       rating,
		Comment:      comment,
		AverageScore: report.AverageScore(c.sess),
	}
}

// Reset discards the session and its turns.
func (c *Controller) Reset(ctx context.Context) {
	if c.sess == nil {
		return
	}
	c.recordEvent(ctx, store.SessionActionReset)
	c.log().Info("session reset")
	c.sess = nil
	c.report = nil
}

// evaluate grades turn once, and only when it has an answer.
func (c *Controller) evaluate(ctx context.Context, turn *session.Turn) error {
	if turn == nil || !turn.Reached() || !turn.Answered() || turn.Evaluation.Set {
		return nil
	}
	q, _ := turn.Question.Get()
	ev, err := c.gen.Evaluate(c.callCtx(ctx), c.sess.Level, q, turn.Answer)
	if err != nil {
		c.log().Warn("evaluation failed", zap.Int(logger.FieldTurn, c.sess.Cursor), zap.Error(err))
		return err
	}
	turn.Evaluation = session.Some(ev)
	return nil
}

func (c *Controller) questionedTurn() *session.Turn {
	if c.sess == nil {
		return nil
	}
	turn := c.sess.Current()
	if turn == nil || !turn.Reached() {
		return nil
	}
	return turn
}

func (c *Controller) enterReport(ctx context.Context) {
	c.log().Info("session finished")
	c.recordEvent(ctx, store.SessionActionFinish)
}

func (c *Controller) recordEvent(ctx context.Context, action string) {
	if c.events == nil || c.sess == nil {
		return
	}
	reached, answered := c.sess.Counts()
	err := c.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      c.sess.ID,
		Action:         action,
		Level:          c.sess.Level.String(),
		PlannedCount:   c.sess.PlannedCount,
		QuestionsAsked: reached,
		Answered:       answered,
		DurationSecs:   int(c.now().Sub(c.sess.StartedAt).Seconds()),
	})
	if err != nil {
		c.log().Warn("failed to record session event", zap.String("action", action), zap.Error(err))
	}
}

func (c *Controller) callCtx(ctx context.Context) context.Context {
	if c.sess == nil {
		return ctx
	}
	return llm.WithSessionID(ctx, c.sess.ID)
}

func (c *Controller) log() *zap.Logger {
	if c.sess == nil {
		return c.logger
	}
	return logger.WithSession(c.logger, c.sess.ID)
}
