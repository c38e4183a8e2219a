package domain

import "time"

// AttentionThreshold is how long a candidate may sit in Inscrito before the
// board flags it.
const AttentionThreshold = 7 * 24 * time.Hour

// BoardColumn is one stage column with its candidates in input order.
type BoardColumn struct {
	Stage      Stage       `json:"stage"`
	Candidates []BoardCard `json:"candidates"`
}

// BoardCard is a candidate as rendered on the board.
type BoardCard struct {
	Candidate
	NeedsAttention bool `json:"needsAttention"`
}

// BoardView groups a candidate list by stage. Every known stage is present,
// even when empty. Candidates carrying an unknown stage go to Unassigned.
type BoardView struct {
	Columns    []BoardColumn `json:"columns"`
	Unassigned []BoardCard   `json:"unassigned"`
}

// Column returns the column for stage, or nil when stage is unknown.
func (b *BoardView) Column(stage Stage) *BoardColumn {
	for i := range b.Columns {
		if b.Columns[i].Stage == stage {
			return &b.Columns[i]
		}
	}
	return nil
}

// OriginCount is one bar of the "origin" chart.
type OriginCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// FunnelStep is one stage of the funnel chart.
type FunnelStep struct {
	Stage Stage `json:"stage"`
	Count int   `json:"count"`
}

// DashboardStats holds the KPI numbers for the dashboard.
type DashboardStats struct {
	Total          int           `json:"total"`
	Hired          int           `json:"hired"`
	Rejected       int           `json:"rejected"`
	Interviews     int           `json:"interviews"`
	NeedsAttention int           `json:"needsAttention"`
	ConversionRate float64       `json:"conversionRate"`
	Funnel         []FunnelStep  `json:"funnel"`
	Origins        []OriginCount `json:"origins"`
}

// UnknownOrigin labels candidates with no source origin.
const UnknownOrigin = "Desconhecido"
