package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"young-ats/internal/domain"
	"young-ats/internal/pipeline"
	"young-ats/pkg/apperror"
	"young-ats/pkg/logger"
)

var exportHeaders = map[string]string{
	"legacyId":         "ID",
	"fullName":         "NOME",
	"email":            "E-MAIL",
	"phone":            "TELEFONE",
	"city":             "CIDADE",
	"state":            "UF",
	"pipelineStage":    "ETAPA",
	"status":           "STATUS",
	"hasDriverLicense": "CNH",
	"feedbackGiven":    "FEEDBACK DADO",
	"optOutLGPD":       "OPT-OUT LGPD",
	"needsAttention":   "REQUER ATENÇÃO",
	"createdAt":        "INSCRITO EM",
}

type exportUsecase struct {
	repo domain.CandidateRepository
}

func NewExportUsecase(repo domain.CandidateRepository) domain.ExportUsecase {
	return &exportUsecase{repo: repo}
}

func (u *exportUsecase) ExportBoard(ctx context.Context, format string, filter domain.ExportFilter) ([]byte, string, error) {
	if filter.Stage != "" && !filter.Stage.IsKnown() {
		return nil, "", apperror.BadRequest(fmt.Sprintf("Unknown pipeline stage: %q", filter.Stage))
	}

	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	selected := make([]domain.Candidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if filter.Stage != "" && c.PipelineStage != filter.Stage {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if !pipeline.MatchesFilter(c, filter.Search) {
			continue
		}
		selected = append(selected, *c)
	}

	at := time.Now()
	rows := make([][]string, 0, len(selected))
	for i := range selected {
		rows = append(rows, exportRow(&selected[i], at))
	}

	logger.Log.Infow("Exporting candidates", "format", format, "rows", len(rows))

	switch format {
	case domain.ExportFormatCSV:
		return exportCSV(rows, at)
	case domain.ExportFormatXLSX, "":
		return exportExcel(rows, at)
	default:
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}
}

// exportRow renders one candidate in ExportColumns order. Contact data of
// opted-out candidates is left blank.
func exportRow(c *domain.Candidate, at time.Time) []string {
	row := make([]string, 0, len(domain.ExportColumns))
	for _, col := range domain.ExportColumns {
		var v string
		switch col {
		case "legacyId":
			v = c.LegacyID
		case "fullName":
			v = c.FullName
		case "email":
			if c.ContactAllowed() {
				v = c.Email
			}
		case "phone":
			if c.ContactAllowed() {
				v = c.Phone
			}
		case "city":
			v = c.City
		case "state":
			v = c.State
		case "pipelineStage":
			v = string(c.PipelineStage)
		case "status":
			v = string(c.Status)
		case "hasDriverLicense":
			if c.HasDriverLicense != nil {
				v = yesNo(*c.HasDriverLicense)
			}
		case "feedbackGiven":
			v = yesNo(c.FeedbackGiven)
		case "optOutLGPD":
			v = yesNo(c.OptOutLGPD)
		case "needsAttention":
			v = yesNo(pipeline.NeedsAttention(c, at))
		case "createdAt":
			if !c.CreatedAt.IsZero() {
				v = c.CreatedAt.Format("2006-01-02")
			}
		}
		row = append(row, v)
	}
	return row
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func exportExcel(rows [][]string, at time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Candidatos"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", apperror.Internal(err)
	}

	for i, col := range domain.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, exportHeaders[col])
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(domain.ExportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range domain.ExportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}
	f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	filename := fmt.Sprintf("candidatos_%s.xlsx", at.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func exportCSV(rows [][]string, at time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(domain.ExportColumns); err != nil {
		return nil, "", apperror.Internal(err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("candidatos_%s.csv", at.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// ExportRowCount is used by the CLI to report what was written.
func ExportRowCount(data []byte, format string) (int, error) {
	switch format {
	case domain.ExportFormatCSV:
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			return 0, err
		}
		return max(len(records)-1, 0), nil
	default:
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return 0, err
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return 0, err
		}
		return max(len(rows)-1, 0), nil
	}
}
