package models

import "strings"

// Category enumerates the report kinds the engine understands.
type Category string

const (
	CategorySales     Category = "Sales"
	CategoryInventory Category = "Inventory"
	CategoryCustomer  Category = "Customer"
	CategorySupplier  Category = "Supplier"
	CategoryStock     Category = "Stock"
	CategoryLowStock  Category = "Low Stock"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategorySales,
	CategoryInventory,
	CategoryCustomer,
	CategorySupplier,
	CategoryStock,
	CategoryLowStock,
}

// ParseCategory maps free-form category text (form dropdown value or console
// input such as "Low Stock Report") onto a Category. Unrecognised text is
// returned trimmed but unchanged, so Valid reports false for it.
func ParseCategory(text string) Category {
	trimmed := strings.TrimSpace(text)
	normalized := strings.ToLower(trimmed)
	normalized = strings.TrimSpace(strings.TrimSuffix(normalized, "report"))
	normalized = strings.Join(strings.Fields(normalized), " ")

	for _, c := range Categories {
		if strings.ToLower(string(c)) == normalized {
			return c
		}
	}
	return Category(trimmed)
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Dated reports whether records of this category carry a date and are
// filtered by the requested range. Catalog snapshots (Stock, Low Stock) are not.
func (c Category) Dated() bool {
	return c != CategoryStock && c != CategoryLowStock
}
