package sheets

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/productreport/internal/config"
	"github.com/mamadbah2/productreport/internal/domain/models"
)

// ReportsRange holds one summary row per generated report, oldest first.
const ReportsRange = "Reports!A:G"

// summaryColumns is the number of cells in a summary row.
const summaryColumns = 7

// Table is an append-only block of spreadsheet rows.
type Table interface {
	Append(ctx context.Context, row []interface{}) error
	Rows(ctx context.Context) ([][]interface{}, error)
}

// SheetTable is a Table bound to one A1 range of a Google spreadsheet.
type SheetTable struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	tableRange    string
	logger        *zap.Logger
}

// NewSheetTable opens the spreadsheet named in cfg and binds tableRange.
func NewSheetTable(ctx context.Context, cfg config.SheetsConfig, tableRange string, logger *zap.Logger) (*SheetTable, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tableRange == "" {
		return nil, fmt.Errorf("sheet table range must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetTable{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		tableRange:    tableRange,
		logger:        logger,
	}, nil
}

// Append adds row below the last filled row of the table.
func (t *SheetTable) Append(ctx context.Context, row []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	_, err := t.values.Append(t.spreadsheetID, t.tableRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row into %s: %w", t.tableRange, err)
	}

	t.logger.Debug("summary row appended", zap.String("range", t.tableRange))
	return nil
}

// Rows returns every filled row of the table, trailing empty cells trimmed.
func (t *SheetTable) Rows(ctx context.Context) ([][]interface{}, error) {
	resp, err := t.values.Get(t.spreadsheetID, t.tableRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.tableRange, err)
	}
	return resp.Values, nil
}

// ReportMirror records a summary row for each generated report and reads the
// history back.
type ReportMirror struct {
	table Table
}

// NewReportMirror wraps the reports table.
func NewReportMirror(table Table) *ReportMirror {
	return &ReportMirror{table: table}
}

// Name identifies the mirror in logs.
func (m *ReportMirror) Name() string {
	return "sheets"
}

// Mirror appends the report summary row.
func (m *ReportMirror) Mirror(ctx context.Context, report models.Report, _ string) error {
	return m.table.Append(ctx, SummaryRow(report.Summary()))
}

// Recent returns up to limit summaries, newest first. Rows that do not parse
// as summaries, such as a header row, are skipped.
func (m *ReportMirror) Recent(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if limit <= 0 {
		return []models.ReportSummary{}, nil
	}

	rows, err := m.table.Rows(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ReportSummary, 0, min(limit, len(rows)))
	for i := len(rows) - 1; i >= 0 && len(summaries) < limit; i-- {
		summary, ok := parseSummaryRow(rows[i])
		if !ok {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// SummaryRow lays out id, category, start, end, description, row count and aggregate.
func SummaryRow(s models.ReportSummary) []interface{} {
	return []interface{}{
		s.ID,
		s.Category,
		s.StartDate,
		s.EndDate,
		s.Description,
		strconv.Itoa(s.RowCount),
		s.Aggregate,
	}
}

func parseSummaryRow(row []interface{}) (models.ReportSummary, bool) {
	cells := make([]string, summaryColumns)
	for i := 0; i < len(row) && i < summaryColumns; i++ {
		cells[i] = fmt.Sprint(row[i])
	}

	count, err := strconv.Atoi(cells[5])
	if err != nil || cells[0] == "" {
		return models.ReportSummary{}, false
	}

	return models.ReportSummary{
		ID:          cells[0],
		Category:    cells[1],
		StartDate:   cells[2],
		EndDate:     cells[3],
		Description: cells[4],
		RowCount:    count,
		Aggregate:   cells[6],
	}, true
}
