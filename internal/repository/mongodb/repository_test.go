package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

func TestNewArchivedReport(t *testing.T) {
	id := uuid.MustParse("7b4f7d3c-2f0e-4a53-9d55-0d7f1f3a6c11")
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 20, 9, 30, 0, 0, time.FixedZone("GMT+2", 2*3600))

	report := models.Report{
		ID:          id,
		Category:    models.CategoryCustomer,
		Range:       models.NewDateRange(start, start.AddDate(0, 0, 9)),
		Description: "q2",
		Rows:        []models.Row{{}, {}},
		Aggregate:   &models.Aggregate{Label: "Total Revenue", Amount: decimal.RequireFromString("1699.98")},
	}

	doc := NewArchivedReport(report, "body", now)

	assert.Equal(t, id.String(), doc.ID)
	assert.Equal(t, "Customer", doc.Category)
	assert.Equal(t, "2025-05-01", doc.StartDate)
	assert.Equal(t, "2025-05-10", doc.EndDate)
	assert.Equal(t, 2, doc.RowCount)
	assert.Equal(t, "1699.98", doc.Aggregate)
	assert.Equal(t, "body", doc.Text)
	assert.Equal(t, time.UTC, doc.CreatedAt.Location())
}

func TestNewArchivedReport_WithoutAggregate(t *testing.T) {
	doc := NewArchivedReport(models.Report{Category: models.CategoryInventory}, "", time.Now())
	assert.Empty(t, doc.Aggregate)
	assert.Zero(t, doc.RowCount)
}
