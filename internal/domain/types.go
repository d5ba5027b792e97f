package domain

type EntryID string
type GoalID string
type ProgressID string
