package reporting

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

// ErrInvalidRange indicates the start date falls after the end date.
var ErrInvalidRange = errors.New("start date cannot be after end date")

// ErrUnknownCategory indicates the requested category is not supported.
var ErrUnknownCategory = errors.New("unknown report category")

// DefaultLowStockThreshold is the quantity under which a product counts as low stock.
const DefaultLowStockThreshold = 50

// RecordSource is the read-only record store the engine filters.
type RecordSource interface {
	Sales() []models.SaleRecord
	Inventory() []models.InventoryRecord
	Customers() []models.CustomerRecord
	Suppliers() []models.SupplierRecord
	Products() []models.Product
}

// Engine filters store records by date range and computes per-category aggregates.
// The zero value uses DefaultLowStockThreshold.
type Engine struct {
	lowStockThreshold int
	newID             func() uuid.UUID
}

// NewEngine wires an engine. A non-positive threshold falls back to DefaultLowStockThreshold.
func NewEngine(lowStockThreshold int) *Engine {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Engine{lowStockThreshold: lowStockThreshold, newID: uuid.New}
}

// Generate builds the report for category over rng. Records are kept in store
// order; both range bounds are inclusive.
func (e *Engine) Generate(category models.Category, rng models.DateRange, description string, store RecordSource) (models.Report, error) {
	if !category.Valid() {
		return models.Report{}, fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
	}
	if !rng.Valid() {
		return models.Report{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, rng.Start.Format(models.DateLayout), rng.End.Format(models.DateLayout))
	}

	newID := e.newID
	if newID == nil {
		newID = uuid.New
	}

	report := models.Report{
		ID:          newID(),
		Category:    category,
		Range:       rng,
		Description: description,
		Columns:     Layout(category),
		Rows:        []models.Row{},
	}

	switch category {
	case models.CategorySales:
		e.fillSales(&report, store.Sales())
	case models.CategoryInventory:
		e.fillInventory(&report, store.Inventory())
	case models.CategoryCustomer:
		e.fillCustomers(&report, store.Customers())
	case models.CategorySupplier:
		e.fillSuppliers(&report, store.Suppliers())
	case models.CategoryStock:
		e.fillProducts(&report, store.Products(), func(models.Product) bool { return true })
	case models.CategoryLowStock:
		threshold := e.lowStockThreshold
		if threshold <= 0 {
			threshold = DefaultLowStockThreshold
		}
		e.fillProducts(&report, store.Products(), func(p models.Product) bool { return p.Quantity < threshold })
	}

	return report, nil
}

func (e *Engine) fillSales(report *models.Report, records []models.SaleRecord) {
	grandTotal := decimal.Zero
	for _, record := range records {
		if !report.Range.Contains(record.Date) {
			continue
		}
		total := record.Total()
		grandTotal = grandTotal.Add(total)
		report.Rows = append(report.Rows, models.Row{Cells: []string{
			record.Date.Format(models.DateLayout),
			record.Product,
			formatInt(record.Quantity),
			FormatMoney(record.UnitPrice),
			FormatMoney(total),
		}})
	}
	report.Aggregate = &models.Aggregate{Label: "Grand Total", Kind: models.AggregateMoney, Amount: grandTotal}
}

func (e *Engine) fillInventory(report *models.Report, records []models.InventoryRecord) {
	for _, record := range records {
		if !report.Range.Contains(record.Date) {
			continue
		}
		report.Rows = append(report.Rows, models.Row{Cells: []string{
			record.Date.Format(models.DateLayout),
			record.Product,
			formatInt(record.StockLevel),
			record.Location,
		}})
	}
}

func (e *Engine) fillCustomers(report *models.Report, records []models.CustomerRecord) {
	revenue := decimal.Zero
	for _, record := range records {
		if !report.Range.Contains(record.Date) {
			continue
		}
		revenue = revenue.Add(record.Amount)
		report.Rows = append(report.Rows, models.Row{Cells: []string{
			record.Date.Format(models.DateLayout),
			record.CustomerName,
			record.PurchasedProduct,
			FormatMoney(record.Amount),
		}})
	}
	report.Aggregate = &models.Aggregate{Label: "Total Revenue", Kind: models.AggregateMoney, Amount: revenue}
}

func (e *Engine) fillSuppliers(report *models.Report, records []models.SupplierRecord) {
	var quantity int64
	for _, record := range records {
		if !report.Range.Contains(record.Date) {
			continue
		}
		quantity += int64(record.Quantity)
		report.Rows = append(report.Rows, models.Row{Cells: []string{
			record.Date.Format(models.DateLayout),
			record.SupplierName,
			record.SuppliedProduct,
			formatInt(record.Quantity),
		}})
	}
	report.Aggregate = &models.Aggregate{Label: "Total Quantity Received", Kind: models.AggregateCount, Count: quantity}
}

func (e *Engine) fillProducts(report *models.Report, products []models.Product, keep func(models.Product) bool) {
	for _, product := range products {
		if !keep(product) {
			continue
		}
		report.Rows = append(report.Rows, models.Row{Cells: []string{
			product.ID,
			product.Name,
			formatInt(product.Quantity),
			FormatMoney(product.Price),
		}})
	}
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}

// FormatMoney renders a monetary value with a leading $ and two decimals.
func FormatMoney(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}
