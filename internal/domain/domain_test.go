package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

func validDraft() domain.EntryDraft {
	return domain.EntryDraft{
		Situation:       "Presentation at work",
		Mood:            "anxious",
		Rating:          2,
		NegativeThought: "Everyone will think I'm incompetent",
	}
}

func TestEntryDraftValidate(t *testing.T) {
	require.NoError(t, validDraft().Validate())

	cases := map[string]func(d *domain.EntryDraft){
		"blank situation": func(d *domain.EntryDraft) { d.Situation = "  " },
		"blank mood":      func(d *domain.EntryDraft) { d.Mood = "" },
		"blank thought":   func(d *domain.EntryDraft) { d.NegativeThought = "" },
		"rating too low":  func(d *domain.EntryDraft) { d.Rating = 0 },
		"rating too high": func(d *domain.EntryDraft) { d.Rating = 6 },
		"blank custom":    func(d *domain.EntryDraft) { d.CustomFields = map[string]string{" ": "x"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			mutate(&d)
			assert.ErrorIs(t, d.Validate(), domain.ErrInvalidDraft)
		})
	}
}

func TestCustomFieldCannotShadowReservedField(t *testing.T) {
	for _, name := range []string{"mood", "Mood", "negative_thought", "negativeThought", "ID"} {
		d := validDraft()
		d.CustomFields = map[string]string{name: "x"}
		assert.ErrorIs(t, d.Validate(), domain.ErrReservedField, name)
	}

	d := validDraft()
	d.CustomFields = map[string]string{"sleep": "6h", "weather": "rain"}
	assert.NoError(t, d.Validate())
}

func TestParseGoalStatus(t *testing.T) {
	st, err := domain.ParseGoalStatus("achieved")
	require.NoError(t, err)
	assert.Equal(t, domain.GoalAchieved, st)

	st, err = domain.ParseGoalStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, domain.GoalInProgress, st)

	for _, in := range []string{"abandoned", " Achieved ", "ACHIEVED", "achieved ", ""} {
		_, err = domain.ParseGoalStatus(in)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "input %q", in)
	}
}

func TestGoalDraftValidate(t *testing.T) {
	assert.NoError(t, domain.GoalDraft{Title: "Exercise 3x/week"}.Validate())
	assert.ErrorIs(t, domain.GoalDraft{Title: "   "}.Validate(), domain.ErrInvalidDraft)
}

func TestAnalysisErrorMatchesBothSentinelAndCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	var err error = &domain.AnalysisError{Op: "analysis", Message: "try again later", Err: cause}
	wrapped := fmt.Errorf("handler: %w", err)

	assert.ErrorIs(t, wrapped, domain.ErrAnalysisFailed)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, domain.ErrMissingCredential)
	assert.Equal(t, "try again later", err.Error())
}

func TestCloneDoesNotShareState(t *testing.T) {
	e := domain.JournalEntry{CustomFields: map[string]string{"sleep": "6h"}}
	c := e.Clone()
	c.CustomFields["sleep"] = "8h"
	assert.Equal(t, "6h", e.CustomFields["sleep"])

	g := domain.Goal{Progress: []domain.ProgressEntry{{Text: "a"}}}
	gc := g.Clone()
	gc.Progress[0].Text = "b"
	assert.Equal(t, "a", g.Progress[0].Text)
	assert.NotNil(t, domain.Goal{}.Clone().Progress)
}
