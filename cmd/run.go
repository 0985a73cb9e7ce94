package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockprep/internal/app"
	"github.com/abhisek/mockprep/internal/config"
	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/interview"
	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/logger"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/screens"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/transcribe"
)

// deps is everything a practice front end needs.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Store
	ctrl   *interview.Controller
	llmErr error
}

func (d *deps) Close() {
	_ = d.log.Sync()
	if d.store != nil {
		_ = d.store.Close()
	}
}

// buildDeps loads configuration and wires the controller. A missing model
// key is not fatal here: ctrl stays nil and llmErr says why, so the TUI can
// still show past reviews.
func buildDeps(ctx context.Context, tui bool) (*deps, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateSettings(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cfg, tui)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfg.KeyDiscovered {
		log.Info("using provider key from environment", zap.String("provider", cfg.LLM.Provider))
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log, store: st}

	if err := cfg.LLM.Validate(); err != nil {
		d.llmErr = err
		return d, nil
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		d.llmErr = err
		return d, nil
	}
	d.ctrl, err = newController(cfg, provider, st.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func newController(cfg *config.Config, provider llm.Provider, events store.EventRepo, log *zap.Logger) (*interview.Controller, error) {
	selector, err := session.NewSelector(cfg.Interview.SourcePolicy, nil)
	if err != nil {
		return nil, err
	}
	voice, err := transcribe.New(cfg.Voice(), log)
	if err != nil {
		return nil, fmt.Errorf("voice answers: %w", err)
	}

	gen := questiongen.New(provider, cfg.Generator(), log)
	classifier := documents.NewClassifier(documents.AutoReader{}, cfg.Documents, log)

	opts := []interview.Option{
		interview.WithSelector(selector),
		interview.WithTranscriber(voice, cfg.Transcribe.MinChars),
		interview.WithLogger(log),
	}
	if events != nil {
		opts = append(opts, interview.WithEventRepo(events))
	}
	return interview.New(gen, classifier, opts...), nil
}

// openStore resolves the DSN and opens the database. An empty SQLite DSN
// means the per-user data directory.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	driver, err := store.ParseDriver(cfg.Store.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Store.DSN
	if driver == store.DriverSQLite {
		if dsn == "" {
			if dsn, err = store.DefaultDBPath(); err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create DB directory: %w", err)
		}
	}
	if dsn == "" {
		return nil, errors.New("store.dsn is required for the postgres driver")
	}

	st, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newLogger writes to stderr for plain commands. The TUI owns the terminal,
// so its logs go to a file next to the default database.
func newLogger(cfg *config.Config, tui bool) (*zap.Logger, error) {
	var outputs []string
	switch {
	case cfg.Log.File != "":
		outputs = []string{cfg.Log.File}
	case tui:
		p, err := store.DefaultDBPath()
		if err != nil {
			return zap.NewNop(), nil
		}
		outputs = []string{filepath.Join(filepath.Dir(p), config.AppName+".log")}
	}
	return logger.New(cfg.Log.JSON, cfg.Log.Debug, outputs...)
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer d.Close()

	level, err := d.cfg.Level()
	if err != nil {
		return err
	}

	env := &screens.Env{
		Controller: d.ctrl,
		Reviews:    d.store.ReviewRepo(),
		Logger:     d.log,
		Paths:      args,
		Defaults: interview.Settings{
			Level:     level,
			Questions: d.cfg.Interview.Questions,
		},
		Version:      version,
		CheckUpdates: true,
	}
	if d.llmErr != nil {
		env.Warning = "Interviews are unavailable: " + d.llmErr.Error()
		d.log.Warn("model provider not configured", zap.Error(d.llmErr))
	}

	return app.Run(env)
}

// withStore opens the configured database for a one-shot command.
func withStore(ctx context.Context, fn func(*store.Store) error) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
