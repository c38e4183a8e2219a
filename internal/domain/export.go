package domain

import "context"

// ExportFormat constants
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// ExportFilter narrows the export. Empty fields match everything.
type ExportFilter struct {
	Stage  Stage  `form:"stage"`
	Status Status `form:"status"`
	Search string `form:"q"`
}

// ExportColumns are the spreadsheet columns, in order.
var ExportColumns = []string{
	"legacyId", "fullName", "email", "phone", "city", "state",
	"pipelineStage", "status", "hasDriverLicense", "feedbackGiven",
	"optOutLGPD", "needsAttention", "createdAt",
}

type ExportUsecase interface {
	// ExportBoard returns the file content and a suggested file name.
	ExportBoard(ctx context.Context, format string, filter ExportFilter) ([]byte, string, error)
}

type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*DashboardStats, error)
}
