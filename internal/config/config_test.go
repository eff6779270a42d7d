package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// clearEnv blanks every bound variable; viper treats empty values as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for key, env := range envBindings {
		t.Setenv(env, "")
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interview.MaxQuestions)
	assert.Equal(t, 120, cfg.Interview.TimePerQuestion)
	assert.InDelta(t, 60.0, cfg.Interview.PassingThreshold, 0.001)
	assert.InDelta(t, 40.0, cfg.Interview.EarlyTerminationThreshold, 0.001)
	assert.True(t, cfg.Interview.Rephrase)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview.yaml", `
interview:
  max_questions: 8
  passing_threshold: 70
  seed: 42
llm:
  model: gemini-2.5-pro
fetch:
  timeout: 10s
  use_browser: true
log:
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Interview.MaxQuestions)
	assert.InDelta(t, 70.0, cfg.Interview.PassingThreshold, 0.001)
	assert.Equal(t, uint64(42), cfg.Interview.Seed)
	assert.Equal(t, 120, cfg.Interview.TimePerQuestion)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.True(t, cfg.Fetch.UseBrowser)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview.json", `{"interview": {"max_questions": 3, "rephrase": false}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Interview.MaxQuestions)
	assert.False(t, cfg.Interview.Rephrase)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview.yaml", "interview:\n  max_questions: 8\n")
	t.Setenv("MAX_QUESTIONS", "10")
	t.Setenv("TIME_PER_QUESTION", "90")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("INTERVIEW_FETCH_USE_BROWSER", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Interview.MaxQuestions)
	assert.Equal(t, 90, cfg.Interview.TimePerQuestion)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.True(t, cfg.Fetch.UseBrowser)
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PASSING_THRESHOLD", "50")
	t.Setenv("INTERVIEW_INTERVIEW_PASSING_THRESHOLD", "75")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.InDelta(t, 75.0, cfg.Interview.PassingThreshold, 0.001)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview.json", `{ invalid json }`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_OutOfRange(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interview.yaml", "interview:\n  max_questions: 0\n")

	_, err := Load(path)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Config.Interview.MaxQuestions", valErr.Field)
	assert.Equal(t, "min", valErr.Message)
}

func TestValidate_Thresholds(t *testing.T) {
	cfg := Default()
	cfg.Interview.PassingThreshold = 101
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LLM.FailureThreshold = 1.5
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}

func TestConfig_Session(t *testing.T) {
	cfg := Default()
	cfg.Interview.MaxQuestions = 7
	cfg.Interview.EarlyTerminationThreshold = 35

	sc := cfg.Session()
	assert.Equal(t, 7, sc.MaxQuestions)
	assert.InDelta(t, 35.0, sc.EarlyTerminationThreshold, 0.001)
	assert.NoError(t, sc.Validate())
}

func TestConfig_ModelConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierLite), cfg.ModelConfig().GetModel(llm.TierLite))

	cfg.LLM.Model = "gemini-custom"
	mc := cfg.ModelConfig()
	assert.Equal(t, "gemini-custom", mc.GetModel(llm.TierLite))
	assert.Equal(t, "gemini-custom", mc.GetModel(llm.TierStandard))
}

func TestConfig_Guard(t *testing.T) {
	cfg := Default()
	cfg.LLM.RequestsPerMinute = 0
	cfg.LLM.BreakerEnabled = false

	gc := cfg.Guard()
	assert.Zero(t, gc.RequestsPerMinute)
	assert.False(t, gc.BreakerEnabled)
	assert.Equal(t, llm.DefaultGuardConfig().MinRequests, gc.MinRequests)
}

func TestConfig_FetchOptions(t *testing.T) {
	assert.Len(t, Default().FetchOptions(), 3)
}
