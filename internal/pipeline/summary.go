package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"young-ats/internal/domain"
)

// IsHired counts a candidate as a hire when the status says so or the
// candidate already reached the last stage.
func IsHired(c *domain.Candidate) bool {
	return c.Status == domain.StatusContratado || c.PipelineStage == domain.StageSelecionado
}

func isInterviewing(c *domain.Candidate) bool {
	return c.PipelineStage == domain.StageEntrevistaI || c.PipelineStage == domain.StageEntrevistaII
}

// Summarize computes the dashboard KPIs. ConversionRate is hires over total,
// as a percentage rounded to one decimal place.
func Summarize(candidates []domain.Candidate, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		Total:   len(candidates),
		Funnel:  make([]domain.FunnelStep, len(domain.Stages)),
		Origins: []domain.OriginCount{},
	}

	stageCount := make(map[domain.Stage]int, len(domain.Stages))
	originCount := make(map[string]int)
	for i := range candidates {
		c := &candidates[i]
		if IsHired(c) {
			stats.Hired++
		}
		if c.Status == domain.StatusReprovado {
			stats.Rejected++
		}
		if isInterviewing(c) {
			stats.Interviews++
		}
		if NeedsAttention(c, now) {
			stats.NeedsAttention++
		}
		stageCount[c.PipelineStage]++

		origin := strings.TrimSpace(c.SourceOrigin)
		if origin == "" {
			origin = domain.UnknownOrigin
		}
		originCount[origin]++
	}

	for i, stage := range domain.Stages {
		stats.Funnel[i] = domain.FunnelStep{Stage: stage, Count: stageCount[stage]}
	}

	for name, value := range originCount {
		stats.Origins = append(stats.Origins, domain.OriginCount{Name: name, Value: value})
	}
	sort.Slice(stats.Origins, func(i, j int) bool {
		if stats.Origins[i].Value != stats.Origins[j].Value {
			return stats.Origins[i].Value > stats.Origins[j].Value
		}
		return stats.Origins[i].Name < stats.Origins[j].Name
	})

	if stats.Total > 0 {
		rate := float64(stats.Hired) / float64(stats.Total) * 100
		stats.ConversionRate = math.Round(rate*10) / 10
	}
	return stats
}
