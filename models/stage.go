package models

import "time"

type StageType string

const (
	StageTypeGroup    StageType = "group"
	StageTypeKnockout StageType = "knockout"
)

type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageActive    StageStatus = "active"
	StageCompleted StageStatus = "completed"
	// StagePaused is only ever set by manual intervention; no lifecycle
	// transition produces it.
	StagePaused StageStatus = "paused"
)

// Stage is one phase of a tournament, ordered densely 0..N-1.
type Stage struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        StageType   `json:"type"`
	Order       int         `json:"order"`
	Status      StageStatus `json:"status"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)
