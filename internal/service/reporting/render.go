package reporting

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

var layouts = map[models.Category][]models.Column{
	models.CategorySales: {
		{Title: "Date", Width: 12},
		{Title: "Product", Width: 15},
		{Title: "Qty", Width: 8},
		{Title: "Price", Width: 10},
		{Title: "Total", Width: 12},
	},
	models.CategoryInventory: {
		{Title: "Date", Width: 12},
		{Title: "Product", Width: 15},
		{Title: "Stock", Width: 8},
		{Title: "Location", Width: 15},
	},
	models.CategoryCustomer: {
		{Title: "Date", Width: 12},
		{Title: "Customer Name", Width: 20},
		{Title: "Product", Width: 15},
		{Title: "Amount", Width: 10},
	},
	models.CategorySupplier: {
		{Title: "Date", Width: 12},
		{Title: "Supplier Name", Width: 20},
		{Title: "Product", Width: 15},
		{Title: "Qty", Width: 8},
	},
	models.CategoryStock: {
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 15},
		{Title: "Quantity", Width: 10},
		{Title: "Price", Width: 10},
	},
}

// Layout returns the column layout used for category.
func Layout(category models.Category) []models.Column {
	if category == models.CategoryLowStock {
		category = models.CategoryStock
	}
	columns := layouts[category]
	out := make([]models.Column, len(columns))
	copy(out, columns)
	return out
}

// Render formats a report as fixed-width text: metadata block, section title,
// header and rule, one line per row, then the aggregate line when defined.
// The output depends only on the report, so rendering twice is byte-identical.
func Render(report models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Report Type: %s\n", report.Category)
	fmt.Fprintf(&b, "Start Date: %s\n", report.Range.Start.Format(models.DateLayout))
	fmt.Fprintf(&b, "End Date: %s\n", report.Range.End.Format(models.DateLayout))
	fmt.Fprintf(&b, "Description: %s\n\n", report.Description)

	fmt.Fprintf(&b, "=== %s DETAILS ===\n", strings.ToUpper(string(report.Category)))

	columns := fitColumns(report.Columns, report.Rows)
	titles := make([]string, len(columns))
	for i, column := range columns {
		titles[i] = column.Title
	}
	b.WriteString(formatLine(columns, titles))
	b.WriteString(strings.Repeat("-", lineWidth(columns)))
	b.WriteString("\n")

	for _, row := range report.Rows {
		b.WriteString(formatLine(columns, row.Cells))
	}

	if report.Aggregate != nil {
		b.WriteString("\n")
		b.WriteString(FormatAggregate(*report.Aggregate))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatAggregate renders "<Label>: $<amount>" for money or "<Label>: <n>" for counts.
func FormatAggregate(aggregate models.Aggregate) string {
	if aggregate.Kind == models.AggregateCount {
		return aggregate.Label + ": " + strconv.FormatInt(aggregate.Count, 10)
	}
	return aggregate.Label + ": " + FormatMoney(aggregate.Amount)
}

// fitColumns widens each column to its title and its longest cell so an
// oversized value never pushes the following columns out of line.
func fitColumns(columns []models.Column, rows []models.Row) []models.Column {
	fitted := make([]models.Column, len(columns))
	for i, column := range columns {
		column.Width = max(column.Width, utf8.RuneCountInString(column.Title))
		for _, row := range rows {
			if i < len(row.Cells) {
				column.Width = max(column.Width, utf8.RuneCountInString(row.Cells[i]))
			}
		}
		fitted[i] = column
	}
	return fitted
}

func formatLine(columns []models.Column, cells []string) string {
	var b strings.Builder
	for i, column := range columns {
		if i > 0 {
			b.WriteString(" ")
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", column.Width-utf8.RuneCountInString(cell)))
	}
	return strings.TrimRight(b.String(), " ") + "\n"
}

// lineWidth is the visual width of a full line: every column plus one space between columns.
func lineWidth(columns []models.Column) int {
	if len(columns) == 0 {
		return 0
	}
	width := len(columns) - 1
	for _, column := range columns {
		width += column.Width
	}
	return width
}
