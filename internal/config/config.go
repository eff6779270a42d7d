// Package config loads layered configuration for the CLI: built-in defaults, then an
// optional YAML or JSON file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/interview-coach/internal/fetch"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the config reads
const EnvPrefix = "INTERVIEW"

// ConfigName is the file name searched for when no explicit config path is given
const ConfigName = "interview-coach"

// Config is the complete CLI configuration
type Config struct {
	Interview InterviewConfig `mapstructure:"interview"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Log       LogConfig       `mapstructure:"log"`
}

// InterviewConfig controls question generation and session rules
type InterviewConfig struct {
	MaxQuestions              int     `mapstructure:"max_questions" validate:"min=1,max=50"`
	TimePerQuestion           int     `mapstructure:"time_per_question" validate:"min=1"`
	PassingThreshold          float64 `mapstructure:"passing_threshold" validate:"min=0,max=100"`
	EarlyTerminationThreshold float64 `mapstructure:"early_termination_threshold" validate:"min=0,max=100"`
	// Seed fixes question selection; zero picks a random seed
	Seed uint64 `mapstructure:"seed"`
	// Rephrase asks the model to reword template questions when an API key is set
	Rephrase bool `mapstructure:"rephrase"`
}

// LLMConfig configures the Gemini client and its guard
type LLMConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	Temperature       float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"min=0"`
	Burst             int           `mapstructure:"burst" validate:"min=0"`
	BreakerEnabled    bool          `mapstructure:"breaker_enabled"`
	BreakerTimeout    time.Duration `mapstructure:"breaker_timeout" validate:"min=0"`
	FailureThreshold  float64       `mapstructure:"failure_threshold" validate:"min=0,max=1"`
}

// FetchConfig configures downloading of job postings and résumé pages
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
	UserAgent  string        `mapstructure:"user_agent"`
	UseBrowser bool          `mapstructure:"use_browser"`
}

// LogConfig selects the log encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// envBindings maps config keys to the unprefixed environment variables that also set them
var envBindings = map[string]string{
	"interview.max_questions":               "MAX_QUESTIONS",
	"interview.time_per_question":           "TIME_PER_QUESTION",
	"interview.passing_threshold":           "PASSING_THRESHOLD",
	"interview.early_termination_threshold": "EARLY_TERMINATION_THRESHOLD",
	"llm.api_key":                           "GEMINI_API_KEY",
	"llm.model":                             "GEMINI_MODEL",
}

func setDefaults(v *viper.Viper) {
	sc := session.DefaultConfig()
	v.SetDefault("interview.max_questions", sc.MaxQuestions)
	v.SetDefault("interview.time_per_question", sc.TimePerQuestion)
	v.SetDefault("interview.passing_threshold", sc.PassingThreshold)
	v.SetDefault("interview.early_termination_threshold", sc.EarlyTerminationThreshold)
	v.SetDefault("interview.seed", 0)
	v.SetDefault("interview.rephrase", true)

	gc := llm.DefaultGuardConfig()
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", llm.DefaultConfig().Temperature)
	v.SetDefault("llm.requests_per_minute", gc.RequestsPerMinute)
	v.SetDefault("llm.burst", gc.Burst)
	v.SetDefault("llm.breaker_enabled", gc.BreakerEnabled)
	v.SetDefault("llm.breaker_timeout", gc.Timeout)
	v.SetDefault("llm.failure_threshold", gc.FailureThreshold)

	v.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	v.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
	v.SetDefault("fetch.use_browser", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load builds the configuration. An empty path searches the working directory and
// $HOME/.config/interview-coach for interview-coach.{yaml,json}; a missing file is not an error
// unless path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/interview-coach")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file or environment applied
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var configValidator = validator.New()

// Validate checks every field range
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Namespace(), Message: fieldErrs[0].Tag(), Cause: err}
		}
		return &ValidationError{Message: "invalid configuration", Cause: err}
	}
	return nil
}

// Session returns the session rules
func (c *Config) Session() session.Config {
	return session.Config{
		MaxQuestions:              c.Interview.MaxQuestions,
		EarlyTerminationThreshold: c.Interview.EarlyTerminationThreshold,
		TimePerQuestion:           c.Interview.TimePerQuestion,
		PassingThreshold:          c.Interview.PassingThreshold,
	}
}

// ModelConfig returns the model selection, applying an explicit model to every tier
func (c *Config) ModelConfig() *llm.Config {
	mc := llm.DefaultConfig().WithSingleModel(c.LLM.Model)
	mc.Temperature = c.LLM.Temperature
	return mc
}

// Guard returns the limiter and breaker settings for the model client
func (c *Config) Guard() llm.GuardConfig {
	gc := llm.DefaultGuardConfig()
	gc.RequestsPerMinute = c.LLM.RequestsPerMinute
	gc.Burst = c.LLM.Burst
	gc.BreakerEnabled = c.LLM.BreakerEnabled
	gc.Timeout = c.LLM.BreakerTimeout
	gc.FailureThreshold = c.LLM.FailureThreshold
	return gc
}

// FetchOptions returns fetcher options for the configured timeout, user agent and browser fallback
func (c *Config) FetchOptions() []fetch.Option {
	return []fetch.Option{
		fetch.WithTimeout(c.Fetch.Timeout),
		fetch.WithUserAgent(c.Fetch.UserAgent),
		fetch.WithBrowserFallback(c.Fetch.UseBrowser),
	}
}

// ValidationError reports a configuration value out of range
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error: %s failed %q", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
