package pipeline

import (
	"strings"
	"time"

	"young-ats/internal/domain"
)

// MatchesFilter reports whether filter is a case-insensitive substring of the
// candidate's name or email. An empty filter matches everything.
func MatchesFilter(c *domain.Candidate, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.FullName), filter) ||
		strings.Contains(strings.ToLower(c.Email), filter)
}

// NeedsAttention flags a selected candidate still waiting for feedback, or a
// new applicant left untouched for more than a week. An applicant with no
// creation date is never flagged.
func NeedsAttention(c *domain.Candidate, now time.Time) bool {
	switch c.PipelineStage {
	case domain.StageSelecionado:
		return !c.FeedbackGiven
	case domain.StageInscrito:
		return !c.CreatedAt.IsZero() && now.Sub(c.CreatedAt) > domain.AttentionThreshold
	}
	return false
}

// GroupByStage builds the board for candidates that match filter. Every stage
// has a column, in board order, even when empty. Input order is kept inside a
// column. Candidates with a stage outside the known set go to Unassigned.
func GroupByStage(candidates []domain.Candidate, filter string, now time.Time) domain.BoardView {
	board := domain.BoardView{
		Columns:    make([]domain.BoardColumn, len(domain.Stages)),
		Unassigned: []domain.BoardCard{},
	}
	index := make(map[domain.Stage]int, len(domain.Stages))
	for i, stage := range domain.Stages {
		board.Columns[i] = domain.BoardColumn{Stage: stage, Candidates: []domain.BoardCard{}}
		index[stage] = i
	}

	for i := range candidates {
		c := &candidates[i]
		if !MatchesFilter(c, filter) {
			continue
		}
		card := domain.BoardCard{Candidate: *c, NeedsAttention: NeedsAttention(c, now)}
		if col, ok := index[c.PipelineStage]; ok {
			board.Columns[col].Candidates = append(board.Columns[col].Candidates, card)
		} else {
			board.Unassigned = append(board.Unassigned, card)
		}
	}
	return board
}

// FilterCandidates returns the candidates matching filter, keeping order.
func FilterCandidates(candidates []domain.Candidate, filter string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for i := range candidates {
		if MatchesFilter(&candidates[i], filter) {
			out = append(out, candidates[i])
		}
	}
	return out
}
