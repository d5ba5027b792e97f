package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

const DefaultModel = "gemini-2.5-flash"

const (
	opBalancedThought = "balanced_thought"
	opEntriesAnalysis = "entries_analysis"
)

// Messages returned to the user when the model call fails.
const (
	msgBalancedThoughtFailed = "Could not get a suggestion from the model. Please try again later."
	msgEntriesAnalysisFailed = "Could not get an analysis from the model. Please try again later."
)

// Service issues exactly one generation request per call. It keeps no state
// between calls, so concurrent calls are independent.
type Service struct {
	gen     domain.TextGenerator
	creds   domain.CredentialSource
	model   string
	prompts PromptBuilder
}

type Option func(*Service)

func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

func WithPromptBuilder(b PromptBuilder) Option {
	return func(s *Service) { s.prompts = b }
}

func NewService(gen domain.TextGenerator, creds domain.CredentialSource, opts ...Option) *Service {
	s := &Service{
		gen:     gen,
		creds:   creds,
		model:   DefaultModel,
		prompts: NewPromptBuilder(LangEnglish, time.Local),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalancedThought asks the model for a balanced reframe of a draft's
// negative thought and returns its raw text.
func (s *Service) GetBalancedThought(ctx context.Context, in BalancedThoughtInput) (string, error) {
	return s.generate(ctx, opBalancedThought, s.prompts.BalancedThought(in), msgBalancedThoughtFailed)
}

// GetEntriesAnalysis asks the model to analyze the first entries of the
// slice. Callers decide what to do with an empty slice before calling.
func (s *Service) GetEntriesAnalysis(ctx context.Context, entries []domain.JournalEntry) (string, error) {
	return s.generate(ctx, opEntriesAnalysis, s.prompts.EntriesAnalysis(entries), msgEntriesAnalysisFailed)
}

func (s *Service) generate(ctx context.Context, op, prompt, failMsg string) (string, error) {
	log := observability.LoggerFromContext(ctx).With(
		zap.String("op", op),
		zap.String("model", s.model),
	)

	key, ok := "", false
	if s.creds != nil {
		key, ok = s.creds.Lookup(ctx)
	}
	if !ok || key == "" {
		log.Warn("no API key configured")
		return "", domain.ErrMissingCredential
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, domain.GenerateRequest{
		APIKey: key,
		Model:  s.model,
		Prompt: prompt,
	})
	if err != nil {
		log.Error("text generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", &domain.AnalysisError{Op: op, Message: failMsg, Err: err}
	}

	log.Info("text generation completed",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}
