package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5

	// CustomFieldPrefix marks a custom field when it arrives flattened next to
	// the regular entry fields (e.g. "custom_sleep").
	CustomFieldPrefix = "custom_"
)

// reservedFieldNames holds the normalized names of the fixed entry fields.
// A custom field may not reuse any of them.
var reservedFieldNames = map[string]struct{}{
	"id":              {},
	"timestamp":       {},
	"situation":       {},
	"mood":            {},
	"rating":          {},
	"negativethought": {},
	"evidencefor":     {},
	"evidenceagainst": {},
	"balancedthought": {},
}

// JournalEntry is one CBT thought record.
type JournalEntry struct {
	ID        EntryID   `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Situation       string `json:"situation"`
	Mood            string `json:"mood"`
	Rating          int    `json:"rating"`
	NegativeThought string `json:"negative_thought"`

	EvidenceFor     string `json:"evidence_for,omitempty"`
	EvidenceAgainst string `json:"evidence_against,omitempty"`
	BalancedThought string `json:"balanced_thought,omitempty"`

	// CustomFields are user-defined attributes (field name -> value).
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// Clone returns a copy that shares no mutable state with e.
func (e JournalEntry) Clone() JournalEntry {
	e.CustomFields = maps.Clone(e.CustomFields)
	return e
}

// EntryDraft is what a caller supplies to create a JournalEntry.
// A zero Timestamp means "now".
type EntryDraft struct {
	Timestamp time.Time

	Situation       string
	Mood            string
	Rating          int
	NegativeThought string

	EvidenceFor     string
	EvidenceAgainst string
	BalancedThought string

	CustomFields map[string]string
}

// Validate applies the form-level rules for a new entry. Stores accept any
// draft; callers that take user input run this first.
func (d EntryDraft) Validate() error {
	switch {
	case strings.TrimSpace(d.Situation) == "":
		return fmt.Errorf("%w: situation is required", ErrInvalidDraft)
	case strings.TrimSpace(d.Mood) == "":
		return fmt.Errorf("%w: mood is required", ErrInvalidDraft)
	case strings.TrimSpace(d.NegativeThought) == "":
		return fmt.Errorf("%w: negative thought is required", ErrInvalidDraft)
	case d.Rating < MinRating || d.Rating > MaxRating:
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidDraft, MinRating, MaxRating)
	}
	return ValidateCustomFields(d.CustomFields)
}

// ValidateCustomFields rejects blank names and names that collide with a
// fixed entry field.
func ValidateCustomFields(fields map[string]string) error {
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: custom field name is required", ErrInvalidDraft)
		}
		if IsReservedFieldName(name) {
			return fmt.Errorf("%w: %q", ErrReservedField, name)
		}
	}
	return nil
}

// IsReservedFieldName reports whether name refers to a fixed entry field.
// "Negative_Thought", "negativeThought" and "negative thought" all match.
func IsReservedFieldName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", " ", "", "-", "").Replace(n)
	_, ok := reservedFieldNames[n]
	return ok
}
