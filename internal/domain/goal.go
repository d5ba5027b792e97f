package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// GoalStatus is the state of a PGA goal.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "in_progress"
	GoalAchieved   GoalStatus = "achieved"
)

func (s GoalStatus) Valid() bool {
	return s == GoalInProgress || s == GoalAchieved
}

// ParseGoalStatus converts user input into a GoalStatus. Only the exact
// values are accepted.
func ParseGoalStatus(s string) (GoalStatus, error) {
	st := GoalStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// ProgressEntry is a note appended to a goal. It only exists inside its goal.
type ProgressEntry struct {
	ID        ProgressID `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Text      string     `json:"text"`
}

// Goal is a positive goal with its progress log, newest first.
type Goal struct {
	ID          GoalID          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TargetDate  string          `json:"target_date"`
	Status      GoalStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Progress    []ProgressEntry `json:"progress"`
}

// Clone returns a copy that shares no mutable state with g.
func (g Goal) Clone() Goal {
	g.Progress = slices.Clone(g.Progress)
	if g.Progress == nil {
		g.Progress = []ProgressEntry{}
	}
	return g
}

// GoalDraft is what a caller supplies to create a Goal.
type GoalDraft struct {
	Title       string
	Description string
	TargetDate  string
}

func (d GoalDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	return nil
}
