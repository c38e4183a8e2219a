// Package pipeline holds the pure rules of the hiring board: the stage gates
// a candidate must pass before moving, the history entries a move produces,
// and the grouping and KPI views computed from a candidate list.
//
// Any stage may be reached from any other stage. Only the data-completeness
// gates below restrict a move.
package pipeline

import (
	"strings"

	"young-ats/internal/domain"
)

// Gate failure reasons, reported to the operator as-is.
const (
	ReasonCityRequired           = "Cidade é obrigatória para mover para Considerado."
	ReasonDriverLicenseRequired  = "Informação de CNH é obrigatória."
	ReasonInterviewNotesRequired = "Preencha as anotações da entrevista antes de selecionar."
	ReasonManagerFeedbackMissing = "Feedback do gestor é obrigatório."
	ReasonFeedbackNotConfirmed   = "Você deve confirmar que o feedback foi dado ao candidato."
)

type check struct {
	ok     func(c *domain.Candidate) bool
	reason string
}

// gates lists, per target stage, the checks in the order they are reported.
var gates = map[domain.Stage][]check{
	domain.StageConsiderado: {
		{ok: func(c *domain.Candidate) bool { return strings.TrimSpace(c.City) != "" }, reason: ReasonCityRequired},
		{ok: func(c *domain.Candidate) bool { return c.HasDriverLicense != nil }, reason: ReasonDriverLicenseRequired},
	},
	domain.StageSelecionado: {
		{ok: func(c *domain.Candidate) bool { return strings.TrimSpace(c.InterviewNotes) != "" }, reason: ReasonInterviewNotesRequired},
		{ok: func(c *domain.Candidate) bool { return strings.TrimSpace(c.ManagerFeedback) != "" }, reason: ReasonManagerFeedbackMissing},
		{ok: func(c *domain.Candidate) bool { return c.FeedbackGiven }, reason: ReasonFeedbackNotConfirmed},
	},
}

// ValidateTransition checks snapshot against the gate of target. Only the
// first unmet condition is reported. Targets without a gate always pass.
func ValidateTransition(snapshot domain.Candidate, target domain.Stage) domain.GateResult {
	for _, g := range gates[target] {
		if !g.ok(&snapshot) {
			return domain.GateResult{Valid: false, Reason: g.reason}
		}
	}
	return domain.GateResult{Valid: true}
}
