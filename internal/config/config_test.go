package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/cbt-notebook/internal/config"
)

// isolate points the config search path at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CBTNOTE_CONFIG_PATH", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ModeLocal, cfg.Mode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName)
	assert.Equal(t, config.BackendGemini, cfg.LLMBackend)
	assert.True(t, cfg.UseMockLLM)
	assert.Equal(t, []string{"API_KEY", "GEMINI_API_KEY"}, cfg.APIKeyEnv)
	assert.Equal(t, config.CredentialStoreDisk, cfg.CredentialStore)
	assert.True(t, filepath.IsAbs(cfg.CredentialDir))
	assert.Equal(t, ".cbtnote", filepath.Base(cfg.CredentialDir))
	assert.Equal(t, "en", cfg.PromptLanguage)
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CBTNOTE_PORT", "9090")
	t.Setenv("CBTNOTE_USE_MOCK_LLM", "false")
	t.Setenv("CBTNOTE_API_KEY_ENV", "MY_KEY, OTHER_KEY")
	t.Setenv("CBTNOTE_PROMPT_LANGUAGE", "JA")
	t.Setenv("CBTNOTE_LLM_BASE_URL", "http://localhost:9999")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.UseMockLLM)
	assert.Equal(t, []string{"MY_KEY", "OTHER_KEY"}, cfg.APIKeyEnv)
	assert.Equal(t, "ja", cfg.PromptLanguage)
	assert.Equal(t, "http://localhost:9999", cfg.LLMBaseURL)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := isolate(t)
	content := "model_name: gemini-2.5-pro\ncredential_store: none\nlog_format: console\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbtnote.yaml"), []byte(content), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName)
	assert.Equal(t, config.CredentialStoreNone, cfg.CredentialStore)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestGCPModeRequiresProject(t *testing.T) {
	isolate(t)
	t.Setenv("CBTNOTE_MODE", "gcp")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("CBTNOTE_GCP_PROJECT", "demo-project")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ModeGCP, cfg.Mode)
	assert.False(t, cfg.UseMockLLM)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	base := config.Config{
		ModelName:       "m",
		LLMBackend:      config.BackendGemini,
		CredentialStore: config.CredentialStoreNone,
		PromptLanguage:  "en",
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.LLMBackend = "openai"
	assert.Error(t, bad.Validate())

	bad = base
	bad.CredentialStore = config.CredentialStoreFirestore
	assert.Error(t, bad.Validate())

	bad = base
	bad.PromptLanguage = "fr"
	assert.Error(t, bad.Validate())
}
