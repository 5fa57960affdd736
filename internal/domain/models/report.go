package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to their calendar date.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// Valid reports whether Start is not after End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether the calendar date of t lies within the range,
// both bounds included.
func (r DateRange) Contains(t time.Time) bool {
	day := DateOf(t)
	return !day.Before(DateOf(r.Start)) && !day.After(DateOf(r.End))
}

// DateOf drops the time-of-day component, keeping the date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Column describes one fixed-width column of a rendered report.
type Column struct {
	Title string
	Width int
}

// Row is one filtered record, already formatted cell by cell.
type Row struct {
	Cells []string
}

// AggregateKind distinguishes monetary aggregates from counts.
type AggregateKind int

const (
	AggregateMoney AggregateKind = iota
	AggregateCount
)

// Aggregate is the single summary figure computed over a report's rows.
type Aggregate struct {
	Label  string
	Kind   AggregateKind
	Amount decimal.Decimal
	Count  int64
}

// Value returns the aggregate as plain text without currency symbol.
func (a Aggregate) Value() string {
	if a.Kind == AggregateCount {
		return decimal.NewFromInt(a.Count).String()
	}
	return a.Amount.StringFixed(2)
}

// Report is the immutable result of one generation request.
type Report struct {
	ID          uuid.UUID
	Category    Category
	Range       DateRange
	Description string
	Columns     []Column
	Rows        []Row
	Aggregate   *Aggregate
}

// ReportSummary is the flat record kept for each generated report by the
// mirrors that track report history.
type ReportSummary struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	RowCount    int    `json:"row_count"`
	Aggregate   string `json:"aggregate,omitempty"`
}

// Summary flattens a report; the aggregate is kept as its plain value.
func (r Report) Summary() ReportSummary {
	s := ReportSummary{
		ID:          r.ID.String(),
		Category:    string(r.Category),
		StartDate:   r.Range.Start.Format(DateLayout),
		EndDate:     r.Range.End.Format(DateLayout),
		Description: r.Description,
		RowCount:    len(r.Rows),
	}
	if r.Aggregate != nil {
		s.Aggregate = r.Aggregate.Value()
	}
	return s
}
