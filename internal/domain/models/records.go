package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted and rendered everywhere.
const DateLayout = "2006-01-02"

// SaleRecord captures a sale of a product on a given day.
type SaleRecord struct {
	Date      time.Time
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total returns quantity x unit price in full precision.
func (r SaleRecord) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// InventoryRecord captures a stock level observation at a location.
type InventoryRecord struct {
	Date       time.Time
	Product    string
	StockLevel int
	Location   string
}

// CustomerRecord captures a customer purchase.
type CustomerRecord struct {
	Date             time.Time
	CustomerName     string
	PurchasedProduct string
	Amount           decimal.Decimal
}

// SupplierRecord captures a delivery received from a supplier.
type SupplierRecord struct {
	Date            time.Time
	SupplierName    string
	SuppliedProduct string
	Quantity        int
}

// Product is an undated catalog entry used by the stock reports.
type Product struct {
	ID       string
	Name     string
	Quantity int
	Price    decimal.Decimal
}
