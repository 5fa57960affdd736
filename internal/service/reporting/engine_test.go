package reporting_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/productreport/internal/domain/models"
	"github.com/mamadbah2/productreport/internal/repository/memory"
	"github.com/mamadbah2/productreport/internal/service/reporting"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return d
}

func rangeOf(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	return models.NewDateRange(date(t, start), date(t, end))
}

func firstCells(rows []models.Row, idx int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Cells[idx])
	}
	return out
}

func TestGenerate_SalesBoundaryInclusive(t *testing.T) {
	engine := reporting.NewEngine(0)
	store := memory.NewSampleStore()

	report, err := engine.Generate(models.CategorySales, rangeOf(t, "2025-05-01", "2025-05-10"), "weekly", store)
	require.NoError(t, err)

	assert.Equal(t, []string{"Laptop", "Phone"}, firstCells(report.Rows, 1))
	require.NotNil(t, report.Aggregate)
	assert.Equal(t, "Grand Total", report.Aggregate.Label)
	assert.True(t, report.Aggregate.Amount.Equal(decimal.RequireFromString("11999.85")), "got %s", report.Aggregate.Amount)
	assert.Equal(t, []string{"2025-05-01", "Laptop", "5", "$999.99", "$4999.95"}, report.Rows[0].Cells)
	assert.Equal(t, "weekly", report.Description)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.ID.String())
}

func TestGenerate_FilterBounds(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Suppliers: []models.SupplierRecord{
			{Date: date(t, "2025-04-30"), SupplierName: "before", Quantity: 1},
			{Date: date(t, "2025-05-01"), SupplierName: "start", Quantity: 2},
			{Date: date(t, "2025-05-05"), SupplierName: "inside", Quantity: 0},
			{Date: date(t, "2025-05-10"), SupplierName: "end", Quantity: 4},
			{Date: date(t, "2025-05-11"), SupplierName: "after", Quantity: 8},
		},
	})

	report, err := reporting.NewEngine(0).Generate(models.CategorySupplier, rangeOf(t, "2025-05-01", "2025-05-10"), "", store)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "inside", "end"}, firstCells(report.Rows, 1))
	require.NotNil(t, report.Aggregate)
	assert.Equal(t, int64(6), report.Aggregate.Count)
	assert.Equal(t, models.AggregateCount, report.Aggregate.Kind)
}

func TestGenerate_SingleDayRange(t *testing.T) {
	report, err := reporting.NewEngine(0).Generate(models.CategorySales, rangeOf(t, "2025-05-10", "2025-05-10"), "", memory.NewSampleStore())
	require.NoError(t, err)

	assert.Equal(t, []string{"Phone"}, firstCells(report.Rows, 1))
	assert.Equal(t, "6999.90", report.Aggregate.Value())
}

func TestGenerate_CategoryAggregates(t *testing.T) {
	engine := reporting.NewEngine(0)
	store := memory.NewSampleStore()
	may := rangeOf(t, "2025-05-01", "2025-05-31")

	tests := []struct {
		name      string
		category  models.Category
		rng       models.DateRange
		rows      int
		label     string
		aggregate string
	}{
		{name: "sales whole month", category: models.CategorySales, rng: may, rows: 3, label: "Grand Total", aggregate: "15199.77"},
		{name: "customer first ten days", category: models.CategoryCustomer, rng: rangeOf(t, "2025-05-01", "2025-05-10"), rows: 2, label: "Total Revenue", aggregate: "1699.98"},
		{name: "supplier whole month", category: models.CategorySupplier, rng: may, rows: 3, label: "Total Quantity Received", aggregate: "75"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report, err := engine.Generate(tc.category, tc.rng, "", store)
			require.NoError(t, err)
			assert.Len(t, report.Rows, tc.rows)
			require.NotNil(t, report.Aggregate)
			assert.Equal(t, tc.label, report.Aggregate.Label)
			assert.Equal(t, tc.aggregate, report.Aggregate.Value())
		})
	}
}

func TestGenerate_InventoryHasNoAggregate(t *testing.T) {
	report, err := reporting.NewEngine(0).Generate(models.CategoryInventory, rangeOf(t, "2025-05-01", "2025-05-07"), "", memory.NewSampleStore())
	require.NoError(t, err)

	assert.Nil(t, report.Aggregate)
	assert.Equal(t, []string{"Laptop", "Phone"}, firstCells(report.Rows, 1))
	assert.Equal(t, []string{"2025-05-07", "Phone", "50", "Warehouse B"}, report.Rows[1].Cells)
}

func TestGenerate_EmptyRange(t *testing.T) {
	engine := reporting.NewEngine(0)
	store := memory.NewSampleStore()
	june := rangeOf(t, "2025-06-01", "2025-06-30")

	sales, err := engine.Generate(models.CategorySales, june, "", store)
	require.NoError(t, err)
	assert.Empty(t, sales.Rows)
	assert.Equal(t, "0.00", sales.Aggregate.Value())

	customers, err := engine.Generate(models.CategoryCustomer, june, "", store)
	require.NoError(t, err)
	assert.Empty(t, customers.Rows)
	assert.Equal(t, "0.00", customers.Aggregate.Value())

	suppliers, err := engine.Generate(models.CategorySupplier, june, "", store)
	require.NoError(t, err)
	assert.Empty(t, suppliers.Rows)
	assert.Equal(t, "0", suppliers.Aggregate.Value())
}

func TestGenerate_InvalidRange(t *testing.T) {
	_, err := reporting.NewEngine(0).Generate(models.CategorySales, rangeOf(t, "2025-05-16", "2025-05-01"), "", memory.NewSampleStore())

	require.Error(t, err)
	assert.ErrorIs(t, err, reporting.ErrInvalidRange)
}

func TestGenerate_UnknownCategory(t *testing.T) {
	engine := reporting.NewEngine(0)
	for _, raw := range []string{"Foo", "Performance", ""} {
		t.Run(raw, func(t *testing.T) {
			_, err := engine.Generate(models.ParseCategory(raw), rangeOf(t, "2025-05-01", "2025-05-10"), "", memory.NewSampleStore())
			assert.ErrorIs(t, err, reporting.ErrUnknownCategory)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	engine := reporting.NewEngine(0)
	store := memory.NewSampleStore()
	rng := rangeOf(t, "2025-05-01", "2025-05-31")

	first, err := engine.Generate(models.CategorySales, rng, "x", store)
	require.NoError(t, err)
	second, err := engine.Generate(models.CategorySales, rng, "x", store)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.True(t, first.Aggregate.Amount.Equal(second.Aggregate.Amount))
	assert.Equal(t, reporting.Render(first), reporting.Render(second))
}

func TestGenerate_StockCategories(t *testing.T) {
	store := memory.NewSampleStore()
	rng := rangeOf(t, "2030-01-01", "2030-01-02")

	stock, err := reporting.NewEngine(0).Generate(models.CategoryStock, rng, "", store)
	require.NoError(t, err)
	assert.Equal(t, []string{"P001", "P002", "P003", "P004"}, firstCells(stock.Rows, 0))
	assert.Nil(t, stock.Aggregate)

	low, err := reporting.NewEngine(0).Generate(models.CategoryLowStock, rng, "", store)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bananas", "Lemons"}, firstCells(low.Rows, 1))

	custom, err := reporting.NewEngine(30).Generate(models.CategoryLowStock, rng, "", store)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lemons"}, firstCells(custom.Rows, 1))
}

func TestEngine_ZeroValueUsable(t *testing.T) {
	var engine reporting.Engine

	report, err := engine.Generate(models.CategoryLowStock, rangeOf(t, "2025-05-01", "2025-05-31"), "", memory.NewSampleStore())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, []string{"P002", "P004"}, firstCells(report.Rows, 0))
}
