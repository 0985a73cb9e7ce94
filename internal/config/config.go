// Package config loads mockprep settings from defaults, an optional YAML
// file and MOCKPREP_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/mockprep/internal/documents"
	"github.com/abhisek/mockprep/internal/llm"
	"github.com/abhisek/mockprep/internal/questiongen"
	"github.com/abhisek/mockprep/internal/session"
	"github.com/abhisek/mockprep/internal/store"
	"github.com/abhisek/mockprep/internal/transcribe"
)

const (
	// AppName is the config file stem and the data directory name.
	AppName = "mockprep"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MOCKPREP"
)

// Config is the full application configuration.
type Config struct {
	LLM        llm.Config        `mapstructure:"llm"`
	Documents  documents.Config  `mapstructure:"documents"`
	Interview  InterviewConfig   `mapstructure:"interview"`
	Transcribe transcribe.Config `mapstructure:"transcribe"`
	Store      StoreConfig       `mapstructure:"store"`
	Log        LogConfig         `mapstructure:"log"`

	// KeyDiscovered is set when the provider key came from a plain vendor
	// variable such as GEMINI_API_KEY.
	KeyDiscovered bool `mapstructure:"-"`
}

// InterviewConfig holds session defaults.
type InterviewConfig struct {
	Level     string `mapstructure:"level"`
	Questions int    `mapstructure:"questions"`
	// SourcePolicy is "deterministic" or "weighted".
	SourcePolicy      string `mapstructure:"source-policy"`
	StrictQuestions   bool   `mapstructure:"strict-questions"`
	MaxPriorQuestions int    `mapstructure:"max-prior-questions"`
}

// StoreConfig selects the database.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// DSN is a file path for SQLite or a connection URL for Postgres.
	// Empty SQLite DSN means the per-user data directory.
	DSN string `mapstructure:"dsn"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`
	// File receives log output. The TUI defaults it to a file next to the
	// database so logs never draw over the screen.
	File string `mapstructure:"file"`
}

// Level parses the configured interview level.
func (c *Config) Level() (session.Level, error) {
	return session.ParseLevel(c.Interview.Level)
}

// Generator returns the question generator settings.
func (c *Config) Generator() questiongen.Config {
	g := questiongen.DefaultConfig()
	g.StrictQuestions = c.Interview.StrictQuestions
	g.MaxPriorQuestions = c.Interview.MaxPriorQuestions
	return g
}

// Voice returns the transcription settings, borrowing the OpenAI key when
// none is set for transcription itself.
func (c *Config) Voice() transcribe.Config {
	t := c.Transcribe
	if t.APIKey == "" {
		t.APIKey = c.LLM.OpenAI.APIKey
		if t.BaseURL == "" {
			t.BaseURL = c.LLM.OpenAI.BaseURL
		}
	}
	return t
}

// Validate checks the settings that would otherwise fail deep inside a
// session.
func (c *Config) Validate() error {
	return errors.Join(c.LLM.Validate(), c.ValidateSettings())
}

// ValidateSettings checks everything except the model provider, so the TUI
// can start without a key and say what is missing.
func (c *Config) ValidateSettings() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if q := c.Interview.Questions; q < session.MinQuestions || q > session.MaxQuestions {
		errs = append(errs, fmt.Errorf("interview.questions: %w", session.ErrQuestionCount))
	}
	if _, err := session.NewSelector(c.Interview.SourcePolicy, nil); err != nil {
		errs = append(errs, err)
	}
	if _, err := store.ParseDriver(c.Store.Driver); err != nil {
		errs = append(errs, err)
	}
	if c.Transcribe.Enabled && c.Voice().APIKey == "" {
		errs = append(errs, errors.New("transcribe.api-key (or llm.openai.api-key) is required for voice answers"))
	}
	return errors.Join(errs...)
}

// Load reads configuration. path may be empty, in which case mockprep.yaml
// is looked up in the working directory and silently skipped when absent.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

// LoadWith is Load on a caller-supplied viper instance, so command-line
// flags bound to it take precedence over the file and environment.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		// Explicitly chosen providers keep their (missing) key so Validate
		// names the right variable.
		if !v.IsSet("llm.provider") || v.GetString("llm.provider") == llm.DefaultConfig().Provider {
			cfg.LLM, cfg.KeyDiscovered = llm.DiscoverConfig(cfg.LLM)
		}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.retry.max-attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial-wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max-wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.retry.jitter", l.Retry.Jitter)
	v.SetDefault("llm.timeout", l.Timeout)

	d := documents.DefaultConfig()
	v.SetDefault("documents.study-budget", d.StudyBudget)
	v.SetDefault("documents.resume-budget", d.ResumeBudget)
	v.SetDefault("documents.min-text-chars", d.MinTextChars)
	v.SetDefault("documents.min-usable-chars", d.MinUsableChars)
	v.SetDefault("documents.resume-tokens", d.ResumeTokens)

	g := questiongen.DefaultConfig()
	v.SetDefault("interview.level", "job")
	v.SetDefault("interview.questions", 5)
	v.SetDefault("interview.source-policy", session.PolicyDeterministic)
	v.SetDefault("interview.strict-questions", g.StrictQuestions)
	v.SetDefault("interview.max-prior-questions", g.MaxPriorQuestions)

	t := transcribe.DefaultConfig()
	v.SetDefault("transcribe.enabled", t.Enabled)
	v.SetDefault("transcribe.model", t.Model)
	v.SetDefault("transcribe.language", t.Language)
	v.SetDefault("transcribe.min-chars", t.MinChars)

	v.SetDefault("store.driver", string(store.DriverSQLite))
	v.SetDefault("log.debug", false)
	v.SetDefault("log.json", false)
}

// envAliases are the short variable names accepted next to the derived
// MOCKPREP_SECTION_KEY form.
var envAliases = map[string][]string{
	"llm.anthropic.api-key":  {"MOCKPREP_ANTHROPIC_API_KEY"},
	"llm.anthropic.model":    {"MOCKPREP_ANTHROPIC_MODEL"},
	"llm.openai.api-key":     {"MOCKPREP_OPENAI_API_KEY"},
	"llm.openai.model":       {"MOCKPREP_OPENAI_MODEL"},
	"llm.openai.base-url":    {"MOCKPREP_OPENAI_BASE_URL"},
	"llm.gemini.api-key":     {"MOCKPREP_GEMINI_API_KEY"},
	"llm.gemini.model":       {"MOCKPREP_GEMINI_MODEL"},
	"llm.openrouter.api-key": {"MOCKPREP_OPENROUTER_API_KEY"},
	"llm.openrouter.model":   {"MOCKPREP_OPENROUTER_MODEL"},
	"store.dsn":              {"MOCKPREP_DB"},
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, names := range envAliases {
		derived := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		if err := v.BindEnv(append([]string{key, derived}, names...)...); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	for _, key := range []string{"llm.openrouter.base-url", "transcribe.api-key", "transcribe.base-url", "log.file"} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}
