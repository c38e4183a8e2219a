package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/internal/domain"
	"young-ats/internal/pipeline"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestValidateTransition_Considerado(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.Candidate
		valid     bool
		reason    string
	}{
		{
			name:      "city missing reports city",
			candidate: domain.Candidate{City: "", HasDriverLicense: boolPtr(true)},
			reason:    pipeline.ReasonCityRequired,
		},
		{
			name:      "whitespace city counts as missing",
			candidate: domain.Candidate{City: "   ", HasDriverLicense: boolPtr(true)},
			reason:    pipeline.ReasonCityRequired,
		},
		{
			name:      "city wins when both are missing",
			candidate: domain.Candidate{},
			reason:    pipeline.ReasonCityRequired,
		},
		{
			name:      "driver license unset",
			candidate: domain.Candidate{City: "Porto Alegre"},
			reason:    pipeline.ReasonDriverLicenseRequired,
		},
		{
			name:      "driver license false is informed",
			candidate: domain.Candidate{City: "Porto Alegre", HasDriverLicense: boolPtr(false)},
			valid:     true,
		},
		{
			name:      "driver license true",
			candidate: domain.Candidate{City: "Canoas", HasDriverLicense: boolPtr(true)},
			valid:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pipeline.ValidateTransition(tt.candidate, domain.StageConsiderado)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestValidateTransition_Selecionado(t *testing.T) {
	complete := domain.Candidate{
		InterviewNotes:  "Boa comunicação",
		ManagerFeedback: "Aprovado pelo gestor",
		FeedbackGiven:   true,
	}

	t.Run("all three present is valid", func(t *testing.T) {
		res := pipeline.ValidateTransition(complete, domain.StageSelecionado)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Reason)
	})

	t.Run("missing notes", func(t *testing.T) {
		c := complete
		c.InterviewNotes = ""
		res := pipeline.ValidateTransition(c, domain.StageSelecionado)
		assert.False(t, res.Valid)
		assert.Equal(t, pipeline.ReasonInterviewNotesRequired, res.Reason)
	})

	t.Run("missing manager feedback", func(t *testing.T) {
		c := complete
		c.ManagerFeedback = ""
		res := pipeline.ValidateTransition(c, domain.StageSelecionado)
		assert.False(t, res.Valid)
		assert.Equal(t, pipeline.ReasonManagerFeedbackMissing, res.Reason)
	})

	t.Run("feedback not confirmed references confirmation", func(t *testing.T) {
		c := complete
		c.FeedbackGiven = false
		res := pipeline.ValidateTransition(c, domain.StageSelecionado)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Reason, "confirmar")
	})

	t.Run("notes reported before feedback", func(t *testing.T) {
		res := pipeline.ValidateTransition(domain.Candidate{}, domain.StageSelecionado)
		assert.Equal(t, pipeline.ReasonInterviewNotesRequired, res.Reason)
	})
}

func TestValidateTransition_UngatedStages(t *testing.T) {
	for _, stage := range []domain.Stage{
		domain.StageInscrito,
		domain.StageEntrevistaI,
		domain.StageTestesRealizados,
		domain.StageEntrevistaII,
	} {
		res := pipeline.ValidateTransition(domain.Candidate{}, stage)
		assert.True(t, res.Valid, "stage %s should be ungated", stage)
	}
}

func TestPrepareStageChange(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prior := domain.HistoryEntry{Date: now.Add(-time.Hour), Action: "Candidato inscrito via Forms", User: domain.SystemUser}
	current := domain.Candidate{
		LegacyID:         "c-1",
		City:             "",
		HasDriverLicense: boolPtr(false),
		PipelineStage:    domain.StageInscrito,
		History:          []domain.HistoryEntry{prior},
	}

	t.Run("pending edits are validated", func(t *testing.T) {
		edits := domain.CandidateEdits{City: strPtr("Porto Alegre")}

		next, res := pipeline.PrepareStageChange(current, edits, domain.StageConsiderado, "rh@youngempreendimentos.com.br", now)

		require.True(t, res.Valid)
		require.NotNil(t, next)
		assert.Equal(t, domain.StageConsiderado, next.PipelineStage)
		assert.Equal(t, "Porto Alegre", next.City)
		require.Len(t, next.History, 2)
		assert.Contains(t, next.History[0].Action, "Inscrito -> Considerado")
		assert.Equal(t, "rh@youngempreendimentos.com.br", next.History[0].User)
		assert.Equal(t, prior, next.History[1])
		assert.Equal(t, now, *next.UpdatedAt)
	})

	t.Run("failure leaves current untouched", func(t *testing.T) {
		next, res := pipeline.PrepareStageChange(current, domain.CandidateEdits{}, domain.StageConsiderado, "rh@youngempreendimentos.com.br", now)

		assert.Nil(t, next)
		assert.False(t, res.Valid)
		assert.Equal(t, pipeline.ReasonCityRequired, res.Reason)
		assert.Len(t, current.History, 1)
		assert.Equal(t, domain.StageInscrito, current.PipelineStage)
	})
}

func TestPrepareFieldEdit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	current := domain.Candidate{PipelineStage: domain.StageEntrevistaI, History: []domain.HistoryEntry{}}

	next := pipeline.PrepareFieldEdit(current, domain.CandidateEdits{Bio: strPtr("nova bio")}, "", now)

	assert.Equal(t, domain.StageEntrevistaI, next.PipelineStage)
	assert.Equal(t, "nova bio", next.Bio)
	require.Len(t, next.History, 1)
	assert.Equal(t, pipeline.ActionFieldUpdate, next.History[0].Action)
	assert.Equal(t, domain.SystemUser, next.History[0].User)
	assert.Empty(t, current.History)
}
