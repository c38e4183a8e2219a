package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/internal/domain"
	"young-ats/internal/pipeline"
)

var boardNow = time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

func TestGroupByStage_EmptyInputHasAllColumns(t *testing.T) {
	board := pipeline.GroupByStage(nil, "", boardNow)

	require.Len(t, board.Columns, len(domain.Stages))
	for i, stage := range domain.Stages {
		assert.Equal(t, stage, board.Columns[i].Stage)
		assert.NotNil(t, board.Columns[i].Candidates)
		assert.Empty(t, board.Columns[i].Candidates)
	}
	assert.Empty(t, board.Unassigned)
}

func TestGroupByStage_GroupsAndFilters(t *testing.T) {
	candidates := []domain.Candidate{
		{LegacyID: "1", FullName: "Ana Souza", Email: "ana@mail.com", PipelineStage: domain.StageInscrito, CreatedAt: boardNow},
		{LegacyID: "2", FullName: "Bruno Lima", Email: "bruno@mail.com", PipelineStage: domain.StageInscrito, CreatedAt: boardNow},
		{LegacyID: "3", FullName: "Carla Dias", Email: "carla@ANA.com", PipelineStage: domain.StageEntrevistaII},
		{LegacyID: "4", FullName: "Davi Rocha", Email: "davi@mail.com", PipelineStage: "Arquivado"},
	}

	t.Run("no filter keeps input order", func(t *testing.T) {
		board := pipeline.GroupByStage(candidates, "", boardNow)

		inscritos := board.Column(domain.StageInscrito).Candidates
		require.Len(t, inscritos, 2)
		assert.Equal(t, "1", inscritos[0].LegacyID)
		assert.Equal(t, "2", inscritos[1].LegacyID)
		assert.Len(t, board.Column(domain.StageEntrevistaII).Candidates, 1)
	})

	t.Run("unknown stage lands in unassigned", func(t *testing.T) {
		board := pipeline.GroupByStage(candidates, "", boardNow)

		require.Len(t, board.Unassigned, 1)
		assert.Equal(t, "4", board.Unassigned[0].LegacyID)
	})

	t.Run("filter matches name or email case-insensitively", func(t *testing.T) {
		board := pipeline.GroupByStage(candidates, "ANA", boardNow)

		assert.Len(t, board.Column(domain.StageInscrito).Candidates, 1)
		assert.Len(t, board.Column(domain.StageEntrevistaII).Candidates, 1)
		assert.Empty(t, board.Unassigned)
	})
}

func TestNeedsAttention(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.Candidate
		want      bool
	}{
		{
			name:      "selected without feedback regardless of age",
			candidate: domain.Candidate{PipelineStage: domain.StageSelecionado, CreatedAt: boardNow},
			want:      true,
		},
		{
			name:      "selected with feedback",
			candidate: domain.Candidate{PipelineStage: domain.StageSelecionado, FeedbackGiven: true},
			want:      false,
		},
		{
			name:      "new applicant 8 days old",
			candidate: domain.Candidate{PipelineStage: domain.StageInscrito, CreatedAt: boardNow.Add(-8 * 24 * time.Hour), FeedbackGiven: true},
			want:      true,
		},
		{
			name:      "new applicant 6 days old",
			candidate: domain.Candidate{PipelineStage: domain.StageInscrito, CreatedAt: boardNow.Add(-6 * 24 * time.Hour)},
			want:      false,
		},
		{
			name:      "new applicant without creation date",
			candidate: domain.Candidate{PipelineStage: domain.StageInscrito},
			want:      false,
		},
		{
			name:      "interview stage 30 days old",
			candidate: domain.Candidate{PipelineStage: domain.StageEntrevistaI, CreatedAt: boardNow.Add(-30 * 24 * time.Hour)},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pipeline.NeedsAttention(&tt.candidate, boardNow))
		})
	}
}

func TestGroupByStage_FlagsAttention(t *testing.T) {
	candidates := []domain.Candidate{
		{LegacyID: "s", PipelineStage: domain.StageSelecionado},
	}

	board := pipeline.GroupByStage(candidates, "", boardNow)

	cards := board.Column(domain.StageSelecionado).Candidates
	require.Len(t, cards, 1)
	assert.True(t, cards[0].NeedsAttention)
}
