package journal

import (
	"context"

	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

// MaxSampleEntries caps a single seeding request.
const MaxSampleEntries = 500

// Service holds the logic around the journal entries: form validation on
// the way in, summaries on the way out.
type Service struct {
	store domain.EntryStore
}

// NewService creates a journal service from an EntryStore
func NewService(store domain.EntryStore) *Service {
	return &Service{
		store: store,
	}
}

// AddEntry validates the draft and stores it.
func (s *Service) AddEntry(ctx context.Context, draft domain.EntryDraft) (domain.JournalEntry, error) {
	log := observability.LoggerFromContext(ctx)

	if err := draft.Validate(); err != nil {
		log.Info("rejected journal entry", zap.Error(err))
		return domain.JournalEntry{}, err
	}

	entry := s.store.AddEntry(draft)
	log.Info("journal entry added",
		zap.String("entry_id", string(entry.ID)),
		zap.Int("custom_fields", len(entry.CustomFields)),
	)
	return entry, nil
}

// DeleteEntry removes an entry; it reports whether one was removed.
func (s *Service) DeleteEntry(ctx context.Context, id domain.EntryID) bool {
	deleted := s.store.DeleteEntry(id)
	observability.LoggerFromContext(ctx).Info("journal entry delete",
		zap.String("entry_id", string(id)),
		zap.Bool("deleted", deleted),
	)
	return deleted
}

// ListEntries returns all entries, newest first.
func (s *Service) ListEntries(ctx context.Context) []domain.JournalEntry {
	return s.store.ListEntries()
}

// SeedSamples adds n demo entries, clamped to [0, MaxSampleEntries].
func (s *Service) SeedSamples(ctx context.Context, n int) []domain.JournalEntry {
	n = min(max(n, 0), MaxSampleEntries)
	seeded := s.store.SeedSampleEntries(n)
	observability.LoggerFromContext(ctx).Info("sample entries seeded", zap.Int("count", len(seeded)))
	return seeded
}

// Summary computes the analytics view over all stored entries.
func (s *Service) Summary(ctx context.Context) Summary {
	return Summarize(s.store.ListEntries())
}

// MoodSuggestions lists the moods already used, for autocompletion.
func (s *Service) MoodSuggestions(ctx context.Context) []string {
	return MoodSuggestions(s.store.ListEntries())
}
