package service

import (
	"testing"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.StockTransaction{},
		&model.PasswordOTP{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name, Description: name + " items"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, stock, threshold int, price string) *model.Product {
	t.Helper()

	product := &model.Product{
		Code:             name + "-code",
		SKU:              name + "-sku",
		Name:             name,
		CategoryID:       categoryID,
		CostPrice:        decimal.NewFromInt(1),
		Price:            decimal.RequireFromString(price),
		InitialQuantity:  stock,
		StockQuantity:    stock,
		ReorderThreshold: threshold,
		BarcodeValue:     name + "-barcode",
		QRValue:          name + "-sku",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewProductRepo(db),
		repository.NewStockTransactionRepo(db),
		db,
		nil,
	)
}

// seedLedgerEntry writes a ledger row directly, with an explicit timestamp,
// for listing/filter tests.
func seedLedgerEntry(t *testing.T, db *gorm.DB, productID, actorID uuid.UUID, txType model.TransactionType, qty int, at time.Time) *model.StockTransaction {
	t.Helper()

	entry := &model.StockTransaction{
		ProductID:     productID,
		Type:          txType,
		Quantity:      qty,
		PerformedByID: actorID,
	}
	entry.CreatedAt = at
	require.NoError(t, db.Create(entry).Error)
	return entry
}
