package service

import (
	"testing"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStockMovement(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, "boss", model.RoleSuperAdmin)
	category := seedCategory(t, db, "Drinks")
	product := seedProduct(t, db, category.ID, "cola", 100, 5, "3.50")

	now := time.Now()
	seedLedgerEntry(t, db, product.ID, actor.ID, model.TxRestock, 30, now.Add(-time.Hour))
	seedLedgerEntry(t, db, product.ID, actor.ID, model.TxSale, 12, now.Add(-time.Hour))
	adj := seedLedgerEntry(t, db, product.ID, actor.ID, model.TxAdjustment, 2, now.Add(-time.Hour))
	require.NoError(t, db.Model(adj).Update("direction", "decrease").Error)

	svc := NewReportService(repository.NewStockTransactionRepo(db))

	movement, err := svc.GetStockMovement(7)
	require.NoError(t, err)
	require.Len(t, movement, 1)
	assert.Equal(t, 30, movement[0].Inbound)
	assert.Equal(t, 14, movement[0].Outbound)
}

func TestGetInventoryStats(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Drinks")
	seedProduct(t, db, category.ID, "empty", 0, 5, "2.00")
	seedProduct(t, db, category.ID, "low", 3, 5, "1.00")
	seedProduct(t, db, category.ID, "fine", 10, 5, "4.00")

	svc := NewReportService(repository.NewStockTransactionRepo(db))

	stats, err := svc.GetInventoryStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStockCount)
	assert.EqualValues(t, 1, stats.OutOfStockCount)
	// 3*1.00 + 10*4.00
	assert.True(t, stats.TotalValuation.Equal(decimal.RequireFromString("43.00")))
}
