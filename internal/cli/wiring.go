package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/adapters/credential"
	"github.com/PabloGalante/cbt-notebook/internal/adapters/llm"
	"github.com/PabloGalante/cbt-notebook/internal/adapters/storage/disk"
	firestorestore "github.com/PabloGalante/cbt-notebook/internal/adapters/storage/firestore"
	"github.com/PabloGalante/cbt-notebook/internal/app/analysis"
	"github.com/PabloGalante/cbt-notebook/internal/config"
	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

// openCredentialStore returns the writable API key store named by the
// config. It returns a nil store for "none". The close func is never nil.
func openCredentialStore(ctx context.Context, cfg *config.Config) (domain.CredentialStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CredentialStore {
	case config.CredentialStoreDisk:
		s, err := disk.NewCredentialStore(cfg.CredentialDir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.CredentialStoreFirestore:
		s, err := firestorestore.NewCredentialStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case config.CredentialStoreNone:
		return nil, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
}

// credentialSource checks the environment first, then the persisted key.
func credentialSource(cfg *config.Config, store domain.CredentialStore) domain.CredentialSource {
	chain := credential.Chain{credential.NewEnv(cfg.APIKeyEnv...)}
	if store != nil {
		chain = append(chain, store)
	}
	return chain
}

func newGenerator(cfg *config.Config) domain.TextGenerator {
	log := observability.Logger()

	if cfg.UseMockLLM {
		log.Info("using offline mock model")
		return llm.NewMockLLM()
	}
	if cfg.LLMBackend == config.BackendVertex {
		log.Info("using Vertex AI backend", zap.String("model", cfg.ModelName))
		return llm.NewVertexGenerator().WithBaseURL(cfg.LLMBaseURL)
	}
	log.Info("using Gemini API backend", zap.String("model", cfg.ModelName))
	return llm.NewGeminiGenerator().WithBaseURL(cfg.LLMBaseURL)
}

func newAnalysisService(cfg *config.Config, creds domain.CredentialSource) *analysis.Service {
	return analysis.NewService(newGenerator(cfg), creds,
		analysis.WithModel(cfg.ModelName),
		analysis.WithPromptBuilder(analysis.NewPromptBuilder(analysis.Language(cfg.PromptLanguage), time.Local)),
	)
}

// loadConfig reads the config and initializes the process logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if _, err := observability.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}
