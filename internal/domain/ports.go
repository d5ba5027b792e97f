package domain

import "context"

// EntryStore holds the journal entries of a session. Lookups by id that miss
// are reported with a false result, never with an error.
type EntryStore interface {
	AddEntry(draft EntryDraft) JournalEntry
	DeleteEntry(id EntryID) bool
	SeedSampleEntries(n int) []JournalEntry
	ListEntries() []JournalEntry
	GetEntry(id EntryID) (JournalEntry, bool)
}

// GoalStore holds the PGA goals of a session.
type GoalStore interface {
	AddGoal(draft GoalDraft) Goal
	DeleteGoal(id GoalID) bool
	SetGoalStatus(id GoalID, status GoalStatus) (bool, error)
	AddProgress(id GoalID, text string) (ProgressEntry, bool, error)
	ListGoals() []Goal
	GetGoal(id GoalID) (Goal, bool)
}

// GenerateRequest is a single text-generation round trip.
type GenerateRequest struct {
	APIKey string
	Model  string
	Prompt string
}

// TextGenerator is the external large-language-model service.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// CredentialSource resolves the API key. ok is false when none is available.
type CredentialSource interface {
	Lookup(ctx context.Context) (key string, ok bool)
}

// CredentialStore is a CredentialSource that the user can write to.
type CredentialStore interface {
	CredentialSource
	Save(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
