package pga

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

// Service manages positive-goal-achievement goals and their progress log.
type Service struct {
	store domain.GoalStore
}

func NewService(store domain.GoalStore) *Service {
	return &Service{store: store}
}

// AddGoal validates the draft and stores a new in-progress goal.
func (s *Service) AddGoal(ctx context.Context, draft domain.GoalDraft) (domain.Goal, error) {
	log := observability.LoggerFromContext(ctx)

	draft.Title = strings.TrimSpace(draft.Title)
	if err := draft.Validate(); err != nil {
		log.Info("rejected goal", zap.Error(err))
		return domain.Goal{}, err
	}

	goal := s.store.AddGoal(draft)
	log.Info("goal added", zap.String("goal_id", string(goal.ID)))
	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id domain.GoalID) bool {
	deleted := s.store.DeleteGoal(id)
	observability.LoggerFromContext(ctx).Info("goal delete",
		zap.String("goal_id", string(id)),
		zap.Bool("deleted", deleted),
	)
	return deleted
}

// SetStatus parses and applies a status. found is false when the goal does
// not exist.
func (s *Service) SetStatus(ctx context.Context, id domain.GoalID, status string) (found bool, err error) {
	st, err := domain.ParseGoalStatus(status)
	if err != nil {
		return false, err
	}

	found, err = s.store.SetGoalStatus(id, st)
	if err != nil {
		return false, err
	}
	observability.LoggerFromContext(ctx).Info("goal status set",
		zap.String("goal_id", string(id)),
		zap.String("status", string(st)),
		zap.Bool("found", found),
	)
	return found, nil
}

// AddProgress appends a progress note to a goal.
func (s *Service) AddProgress(ctx context.Context, id domain.GoalID, text string) (domain.ProgressEntry, bool, error) {
	p, found, err := s.store.AddProgress(id, strings.TrimSpace(text))
	if err != nil {
		return domain.ProgressEntry{}, false, err
	}
	observability.LoggerFromContext(ctx).Info("goal progress",
		zap.String("goal_id", string(id)),
		zap.Bool("found", found),
	)
	return p, found, nil
}

func (s *Service) ListGoals(ctx context.Context) []domain.Goal {
	return s.store.ListGoals()
}

func (s *Service) GetGoal(ctx context.Context, id domain.GoalID) (domain.Goal, bool) {
	return s.store.GetGoal(id)
}
