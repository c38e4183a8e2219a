package domain

import (
	"context"
	"time"
)

// Event channel names.
const (
	EventStageChanged   = "candidate.stage_changed"
	EventNeedsAttention = "candidate.needs_attention"
)

// CandidateEvent is the payload published when something about a candidate
// is worth telling other processes.
type CandidateEvent struct {
	Type      string    `json:"type"`
	LegacyID  string    `json:"legacyId"`
	FullName  string    `json:"fullName"`
	FromStage Stage     `json:"fromStage,omitempty"`
	ToStage   Stage     `json:"toStage,omitempty"`
	Actor     string    `json:"actor"`
	At        time.Time `json:"at"`
}

// EventPublisher fans candidate events out. Failures must never roll back the
// write that triggered them.
type EventPublisher interface {
	Publish(ctx context.Context, event CandidateEvent) error
}
