package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/feedback-quality/internal/llm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"provider": "openai",
		"api_key": "sk-test",
		"model": "gpt-4o",
		"timeout": "15s",
		"cache_ttl": 120,
		"breaker_threshold": 3,
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, Duration(15*time.Second), cfg.Timeout)
	assert.Equal(t, Duration(2*time.Minute), cfg.CacheTTL)
	assert.Equal(t, 3, cfg.BreakerThreshold)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"timeout": "soon"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Provider: "gemini", Port: 1234}
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvProvider:         "chat",
		EnvAPIKey:           "key",
		EnvBaseURL:          "https://ai.internal.example",
		EnvTimeout:          "5s",
		EnvBreakerThreshold: "7",
		EnvRedisURL:         "redis://localhost:6379/0",
	}))
	require.NoError(t, err)

	assert.Equal(t, "chat", cfg.Provider)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "https://ai.internal.example", cfg.BaseURL)
	assert.Equal(t, Duration(5*time.Second), cfg.Timeout)
	assert.Equal(t, 7, cfg.BreakerThreshold)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 1234, cfg.Port, "unset variables leave values alone")
}

func TestApplyEnv_CollectsErrors(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvTimeout: "forever",
		EnvPort:    "eighty",
	}))
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	assert.NoError(t, valid.Validate())

	withKey := Defaults()
	withKey.APIKey = "key"
	withKey.BaseURL = "https://ai.example.com"
	assert.NoError(t, withKey.Validate())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Provider:         "mystery",
		Timeout:          Duration(-time.Second),
		BreakerThreshold: -1,
		Port:             70000,
		RedisURL:         "localhost:6379",
		DatabaseURL:      "mysql://db",
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 6)
	assert.Contains(t, err.Error(), "unknown provider")
	assert.Contains(t, err.Error(), "redis_url")
}

func TestValidate_ChatNeedsBaseURL(t *testing.T) {
	cfg := Defaults()
	cfg.APIKey = "key"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{APIKey: "key", Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "key", merged.APIKey)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultProvider, merged.Provider)
	assert.Equal(t, Duration(DefaultTimeout), merged.Timeout)
	assert.Equal(t, Duration(DefaultCacheTTL), merged.CacheTTL)
	assert.Equal(t, DefaultBreakerThreshold, merged.BreakerThreshold)
	assert.Equal(t, Duration(DefaultBreakerCooldown), merged.BreakerCooldown)
	assert.Equal(t, 0, cfg.BreakerThreshold, "receiver is unchanged")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `{"provider":"openai","api_key":"from-file","port":7000}`)
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, Duration(DefaultTimeout), cfg.Timeout)
}

func TestFromEnv_NoKeyDisablesAI(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvProvider, "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.AIEnabled())
}

func TestLLMConfig(t *testing.T) {
	cfg := Defaults()
	cfg.BaseURL = "https://ai.example.com"
	cfg.Model = "review-model"
	cfg.Timeout = Duration(10 * time.Second)

	llmCfg := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderChat, llmCfg.Provider)
	assert.Equal(t, "https://ai.example.com", llmCfg.BaseURL)
	assert.Equal(t, 10*time.Second, llmCfg.Timeout)
	assert.Equal(t, "review-model", llmCfg.GetModel(llm.TierAdvanced))
	assert.Contains(t, llmCfg.SystemPrompt, "360-degree feedback")

	gemini := Defaults()
	gemini.Provider = "gemini"
	assert.Equal(t, "gemini-2.5-flash", gemini.LLMConfig().GetModel(llm.TierStandard))
}

func TestDuration_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
