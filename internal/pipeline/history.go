package pipeline

import (
	"fmt"
	"time"

	"young-ats/internal/domain"
)

// History actions.
const (
	ActionFieldUpdate   = "Dados atualizados"
	ActionManualCreate  = "Candidato criado manualmente"
	ActionFormIntake    = "Candidato inscrito via Forms"
	stageChangeTemplate = "Mudança de estágio: %s -> %s"
)

// TransitionAction is the history text for a move from one stage to another.
func TransitionAction(from, to domain.Stage) string {
	return fmt.Sprintf(stageChangeTemplate, from, to)
}

// NewHistoryEntry builds an entry signed by actor. An empty actor is recorded
// as the system user.
func NewHistoryEntry(action, actor string, at time.Time) domain.HistoryEntry {
	if actor == "" {
		actor = domain.SystemUser
	}
	return domain.HistoryEntry{Date: at, Action: action, User: actor}
}

// PrepareStageChange merges edits onto a copy of current, gates the merged
// snapshot against target and, when it passes, returns the record to persist
// with its new stage and a transition entry at the head of its history.
// current is never modified. On gate failure the returned result carries the
// reason and the candidate is nil.
func PrepareStageChange(current domain.Candidate, edits domain.CandidateEdits, target domain.Stage, actor string, now time.Time) (*domain.Candidate, domain.GateResult) {
	merged := current.Clone()
	edits.ApplyTo(&merged)

	result := ValidateTransition(merged, target)
	if !result.Valid {
		return nil, result
	}

	from := merged.PipelineStage
	merged.PipelineStage = target
	merged.PrependHistory(NewHistoryEntry(TransitionAction(from, target), actor, now))
	merged.UpdatedAt = &now
	return &merged, result
}

// PrepareFieldEdit merges edits onto a copy of current and records the
// generic update entry. Stage is left as is and no gate runs.
func PrepareFieldEdit(current domain.Candidate, edits domain.CandidateEdits, actor string, now time.Time) *domain.Candidate {
	merged := current.Clone()
	edits.ApplyTo(&merged)
	merged.PrependHistory(NewHistoryEntry(ActionFieldUpdate, actor, now))
	merged.UpdatedAt = &now
	return &merged
}
