package memory

import (
	"slices"
	"strings"
	"sync"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// GoalStore is the in-memory implementation of domain.GoalStore.
type GoalStore struct {
	mu    sync.RWMutex
	goals []domain.Goal // newest first
	opts  options
}

// NewGoalStore creates an empty GoalStore.
func NewGoalStore(opts ...Option) *GoalStore {
	return &GoalStore{
		goals: []domain.Goal{},
		opts:  buildOptions(opts),
	}
}

// AddGoal stores a new in-progress goal in front of the collection.
func (s *GoalStore) AddGoal(draft domain.GoalDraft) domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := domain.Goal{
		ID:          domain.GoalID("goal-" + s.opts.newID()),
		Title:       draft.Title,
		Description: draft.Description,
		TargetDate:  draft.TargetDate,
		Status:      domain.GoalInProgress,
		CreatedAt:   s.opts.now(),
		Progress:    []domain.ProgressEntry{},
	}

	s.goals = slices.Insert(s.goals, 0, goal)
	return goal.Clone()
}

// DeleteGoal removes a goal together with its progress entries.
func (s *GoalStore) DeleteGoal(id domain.GoalID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.goals = slices.Delete(s.goals, i, i+1)
	return true
}

// SetGoalStatus changes the status of a goal. An invalid status is rejected
// whether or not the goal exists; a missing goal is reported with false.
func (s *GoalStore) SetGoalStatus(id domain.GoalID, status domain.GoalStatus) (bool, error) {
	if !status.Valid() {
		return false, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.goals[i].Status = status
	return true, nil
}

// AddProgress prepends a progress note to a goal. Blank text is rejected
// before the goal is looked up.
func (s *GoalStore) AddProgress(id domain.GoalID, text string) (domain.ProgressEntry, bool, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ProgressEntry{}, false, domain.ErrEmptyProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ProgressEntry{}, false, nil
	}

	p := domain.ProgressEntry{
		ID:        domain.ProgressID("progress-" + s.opts.newID()),
		Timestamp: s.opts.now(),
		Text:      text,
	}
	s.goals[i].Progress = slices.Insert(s.goals[i].Progress, 0, p)
	return p, true, nil
}

func (s *GoalStore) ListGoals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Goal, len(s.goals))
	for i, g := range s.goals {
		out[i] = g.Clone()
	}
	return out
}

func (s *GoalStore) GetGoal(id domain.GoalID) (domain.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Goal{}, false
	}
	return s.goals[i].Clone(), true
}

// indexOf expects s.mu to be held.
func (s *GoalStore) indexOf(id domain.GoalID) int {
	return slices.IndexFunc(s.goals, func(g domain.Goal) bool { return g.ID == id })
}

var _ domain.GoalStore = (*GoalStore)(nil)
