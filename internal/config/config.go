package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const (
	CredentialStoreDisk      = "disk"
	CredentialStoreFirestore = "firestore"
	CredentialStoreNone      = "none"

	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type Config struct {
	Mode Mode

	Port string

	ModelName  string
	LLMBackend string // "gemini" or "vertex"
	LLMBaseURL string // empty = SDK default endpoint
	UseMockLLM bool   // true = never call the real model

	// APIKeyEnv lists the environment variables checked for the API key,
	// in order.
	APIKeyEnv       []string
	CredentialStore string // "disk", "firestore" or "none"
	CredentialDir   string
	GCPProjectID    string

	PromptLanguage string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if any), an optional .cbtnote.yaml and CBTNOTE_*
// environment variables, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".cbtnote")
	v.SetEnvPrefix("CBTNOTE")
	v.AutomaticEnv()

	if override := os.Getenv("CBTNOTE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeLocal))
	v.SetDefault("port", "8080")
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("llm_backend", BackendGemini)
	v.SetDefault("llm_base_url", "")
	v.SetDefault("api_key_env", "API_KEY,GEMINI_API_KEY")
	v.SetDefault("credential_store", CredentialStoreDisk)
	v.SetDefault("credential_dir", "~/.cbtnote")
	v.SetDefault("gcp_project", "")
	v.SetDefault("prompt_language", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var mode Mode
	switch strings.ToLower(v.GetString("mode")) {
	case "gcp":
		mode = ModeGCP
	case "local", "":
		mode = ModeLocal
	default:
		return nil, fmt.Errorf("unknown mode %q", v.GetString("mode"))
	}

	// The mock stays on in local mode unless switched off explicitly.
	useMock := mode == ModeLocal
	if v.IsSet("use_mock_llm") {
		useMock = v.GetBool("use_mock_llm")
	}

	dir, err := homedir.Expand(v.GetString("credential_dir"))
	if err != nil {
		return nil, fmt.Errorf("expanding credential_dir: %w", err)
	}

	cfg := &Config{
		Mode: mode,

		Port: v.GetString("port"),

		ModelName:  v.GetString("model_name"),
		LLMBackend: strings.ToLower(v.GetString("llm_backend")),
		LLMBaseURL: v.GetString("llm_base_url"),
		UseMockLLM: useMock,

		APIKeyEnv:       splitList(v.GetString("api_key_env")),
		CredentialStore: strings.ToLower(v.GetString("credential_store")),
		CredentialDir:   dir,
		GCPProjectID:    v.GetString("gcp_project"),

		PromptLanguage: strings.ToLower(v.GetString("prompt_language")),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and cross-field requirements.
func (c *Config) Validate() error {
	switch c.LLMBackend {
	case BackendGemini, BackendVertex:
	default:
		return fmt.Errorf("unknown llm_backend %q", c.LLMBackend)
	}

	switch c.CredentialStore {
	case CredentialStoreDisk, CredentialStoreNone:
	case CredentialStoreFirestore:
		if c.GCPProjectID == "" {
			return errors.New("gcp_project must be set for the firestore credential store")
		}
	default:
		return fmt.Errorf("unknown credential_store %q", c.CredentialStore)
	}

	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		return errors.New("gcp_project must be set in gcp mode")
	}

	switch c.PromptLanguage {
	case "en", "ja":
	default:
		return fmt.Errorf("unsupported prompt_language %q", c.PromptLanguage)
	}

	if c.ModelName == "" {
		return errors.New("model_name must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
