package memory

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

// Store is the read-only record store queried by the report engine. It is
// populated once and never mutated; accessors hand out copies.
type Store struct {
	sales     []models.SaleRecord
	inventory []models.InventoryRecord
	customers []models.CustomerRecord
	suppliers []models.SupplierRecord
	products  []models.Product
}

// Seed groups the records a Store is built from.
type Seed struct {
	Sales     []models.SaleRecord
	Inventory []models.InventoryRecord
	Customers []models.CustomerRecord
	Suppliers []models.SupplierRecord
	Products  []models.Product
}

// NewStore builds a Store from the provided seed, preserving insertion order.
func NewStore(seed Seed) *Store {
	return &Store{
		sales:     slices.Clone(seed.Sales),
		inventory: slices.Clone(seed.Inventory),
		customers: slices.Clone(seed.Customers),
		suppliers: slices.Clone(seed.Suppliers),
		products:  slices.Clone(seed.Products),
	}
}

// NewSampleStore returns a Store holding the fixed sample data set.
func NewSampleStore() *Store {
	return NewStore(SampleSeed())
}

// Sales returns sale records in insertion order.
func (s *Store) Sales() []models.SaleRecord { return slices.Clone(s.sales) }

// Inventory returns inventory records in insertion order.
func (s *Store) Inventory() []models.InventoryRecord { return slices.Clone(s.inventory) }

// Customers returns customer purchase records in insertion order.
func (s *Store) Customers() []models.CustomerRecord { return slices.Clone(s.customers) }

// Suppliers returns supplier delivery records in insertion order.
func (s *Store) Suppliers() []models.SupplierRecord { return slices.Clone(s.suppliers) }

// Products returns the product catalog in insertion order.
func (s *Store) Products() []models.Product { return slices.Clone(s.products) }

// SampleSeed is the data set loaded at startup.
func SampleSeed() Seed {
	return Seed{
		Sales: []models.SaleRecord{
			{Date: day("2025-05-01"), Product: "Laptop", Quantity: 5, UnitPrice: money("999.99")},
			{Date: day("2025-05-10"), Product: "Phone", Quantity: 10, UnitPrice: money("699.99")},
			{Date: day("2025-05-15"), Product: "Tablet", Quantity: 8, UnitPrice: money("399.99")},
		},
		Inventory: []models.InventoryRecord{
			{Date: day("2025-05-01"), Product: "Laptop", StockLevel: 25, Location: "Warehouse A"},
			{Date: day("2025-05-07"), Product: "Phone", StockLevel: 50, Location: "Warehouse B"},
			{Date: day("2025-05-15"), Product: "Tablet", StockLevel: 30, Location: "Warehouse A"},
		},
		Customers: []models.CustomerRecord{
			{Date: day("2025-05-02"), CustomerName: "naseem", PurchasedProduct: "Laptop", Amount: money("999.99")},
			{Date: day("2025-05-08"), CustomerName: "shahid", PurchasedProduct: "Phone", Amount: money("699.99")},
			{Date: day("2025-05-12"), CustomerName: "wazir", PurchasedProduct: "Tablet", Amount: money("399.99")},
		},
		Suppliers: []models.SupplierRecord{
			{Date: day("2025-05-03"), SupplierName: "naseem", SuppliedProduct: "Laptop", Quantity: 20},
			{Date: day("2025-05-09"), SupplierName: "shahid", SuppliedProduct: "Phone", Quantity: 30},
			{Date: day("2025-05-14"), SupplierName: "wazir", SuppliedProduct: "Tablet", Quantity: 25},
		},
		Products: []models.Product{
			{ID: "P001", Name: "Apples", Quantity: 100, Price: money("0.50")},
			{ID: "P002", Name: "Bananas", Quantity: 40, Price: money("0.30")},
			{ID: "P003", Name: "Oranges", Quantity: 120, Price: money("0.60")},
			{ID: "P004", Name: "Lemons", Quantity: 25, Price: money("0.40")},
		},
	}
}

func day(value string) time.Time {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
