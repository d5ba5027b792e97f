package pga_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/cbt-notebook/internal/adapters/storage/memory"
	"github.com/PabloGalante/cbt-notebook/internal/app/pga"
	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

func TestGoalScenario(t *testing.T) {
	ctx := context.Background()
	svc := pga.NewService(memory.NewGoalStore())

	g, err := svc.AddGoal(ctx, domain.GoalDraft{Title: "Exercise 3x/week"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalInProgress, g.Status)
	assert.Empty(t, g.Progress)

	_, found, err := svc.AddProgress(ctx, g.ID, "Ran 5km")
	require.NoError(t, err)
	require.True(t, found)

	got, _ := svc.GetGoal(ctx, g.ID)
	require.Len(t, got.Progress, 1)
	assert.Equal(t, "Ran 5km", got.Progress[0].Text)

	found, err = svc.SetStatus(ctx, g.ID, "achieved")
	require.NoError(t, err)
	require.True(t, found)

	after, _ := svc.GetGoal(ctx, g.ID)
	assert.Equal(t, domain.GoalAchieved, after.Status)
	assert.Equal(t, got.Progress, after.Progress)
}

func TestAddGoalRequiresTitle(t *testing.T) {
	svc := pga.NewService(memory.NewGoalStore())

	_, err := svc.AddGoal(context.Background(), domain.GoalDraft{Title: "  ", Description: "d"})
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	assert.Empty(t, svc.ListGoals(context.Background()))
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	ctx := context.Background()
	svc := pga.NewService(memory.NewGoalStore())
	g, _ := svc.AddGoal(ctx, domain.GoalDraft{Title: "Sleep by 23:00"})

	_, err := svc.SetStatus(ctx, g.ID, "paused")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	found, err := svc.SetStatus(ctx, "missing", "achieved")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestAddProgressRejectsWhitespace(t *testing.T) {
	ctx := context.Background()
	svc := pga.NewService(memory.NewGoalStore())
	g, _ := svc.AddGoal(ctx, domain.GoalDraft{Title: "Sleep by 23:00"})

	_, _, err := svc.AddProgress(ctx, g.ID, " \t ")
	assert.ErrorIs(t, err, domain.ErrEmptyProgress)

	got, _ := svc.GetGoal(ctx, g.ID)
	assert.Empty(t, got.Progress)
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	svc := pga.NewService(memory.NewGoalStore())
	g, _ := svc.AddGoal(ctx, domain.GoalDraft{Title: "Sleep by 23:00"})

	assert.True(t, svc.DeleteGoal(ctx, g.ID))
	assert.False(t, svc.DeleteGoal(ctx, g.ID))
}
