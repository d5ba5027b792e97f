package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// seedWindowDays bounds how far back sample entries are dated.
const seedWindowDays = 60

// EntryStore is the in-memory implementation of domain.EntryStore.
// Entries live for the lifetime of the process; nothing is persisted.
type EntryStore struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry // newest first by insertion
	opts    options
}

// NewEntryStore creates an empty EntryStore.
func NewEntryStore(opts ...Option) *EntryStore {
	return &EntryStore{
		entries: []domain.JournalEntry{},
		opts:    buildOptions(opts),
	}
}

// AddEntry stores a new entry in front of the collection. The draft is not
// validated.
func (s *EntryStore) AddEntry(draft domain.EntryDraft) domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := draft.Timestamp
	if ts.IsZero() {
		ts = s.opts.now()
	}

	entry := domain.JournalEntry{
		ID:              domain.EntryID(s.opts.newID()),
		Timestamp:       ts,
		Situation:       draft.Situation,
		Mood:            draft.Mood,
		Rating:          draft.Rating,
		NegativeThought: draft.NegativeThought,
		EvidenceFor:     draft.EvidenceFor,
		EvidenceAgainst: draft.EvidenceAgainst,
		BalancedThought: draft.BalancedThought,
		CustomFields:    maps.Clone(draft.CustomFields),
	}

	s.entries = slices.Insert(s.entries, 0, entry)
	return entry.Clone()
}

// DeleteEntry removes the entry with the given id. It reports whether an
// entry was removed.
func (s *EntryStore) DeleteEntry(id domain.EntryID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e domain.JournalEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// SeedSampleEntries inserts n demo entries dated within the last 60 days and
// re-sorts the whole collection newest first. It returns the inserted entries.
func (s *EntryStore) SeedSampleEntries(n int) []domain.JournalEntry {
	if n <= 0 {
		return []domain.JournalEntry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	seeded := make([]domain.JournalEntry, 0, n)
	for i := 0; i < n; i++ {
		sample := sampleEntries[i%len(sampleEntries)]
		days := s.opts.rng.IntN(seedWindowDays)

		entry := sample.Clone()
		entry.ID = domain.EntryID("sample-" + s.opts.newID())
		entry.Timestamp = now.AddDate(0, 0, -days)
		seeded = append(seeded, entry)
	}

	s.entries = append(seeded, s.entries...)
	slices.SortStableFunc(s.entries, func(a, b domain.JournalEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	out := make([]domain.JournalEntry, len(seeded))
	for i, e := range seeded {
		out[i] = e.Clone()
	}
	return out
}

// ListEntries returns a copy of the collection in store order.
func (s *EntryStore) ListEntries() []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

func (s *EntryStore) GetEntry(id domain.EntryID) (domain.JournalEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return domain.JournalEntry{}, false
}

var _ domain.EntryStore = (*EntryStore)(nil)
