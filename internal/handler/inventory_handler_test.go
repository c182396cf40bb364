package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"
	"go-pos-inventory/pkg/jwt"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupInventoryApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
	))

	svc := service.NewInventoryService(
		repository.NewProductRepo(db),
		repository.NewStockTransactionRepo(db),
		db,
		nil,
	)
	h := NewInventoryHandler(svc)

	app := fiber.New()
	protected := app.Group("", middleware.RequireAuth())
	protected.Post("/inventory", h.CreateTransaction)
	protected.Get("/inventory", h.ListTransactions)

	return app, db
}

func seedActor(t *testing.T, db *gorm.DB, username, role string) (*model.User, string) {
	t.Helper()

	user := &model.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return user, token
}

func seedStockedProduct(t *testing.T, db *gorm.DB, name string, stock int) *model.Product {
	t.Helper()

	category := &model.Category{Name: name + " category"}
	require.NoError(t, db.Create(category).Error)

	product := &model.Product{
		Code:          name + "-code",
		SKU:           name + "-sku",
		Name:          name,
		CategoryID:    category.ID,
		Price:         decimal.RequireFromString("2.50"),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestCreateTransactionEndpoint(t *testing.T) {
	app, db := setupInventoryApp(t)
	_, token := seedActor(t, db, "cashier1", model.RoleCashier)
	product := seedStockedProduct(t, db, "cola", 20)

	resp, body := doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"productId": product.ID.String(),
		"type":      "sale",
		"quantity":  5,
	})
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "Inventory transaction recorded.", body["message"])
	assert.NotEmpty(t, body["transactionId"])

	productBody, ok := body["product"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, product.ID.String(), productBody["id"])
	assert.EqualValues(t, 15, productBody["stockQuantity"])
}

func TestCreateTransactionEndpoint_Errors(t *testing.T) {
	app, db := setupInventoryApp(t)
	_, token := seedActor(t, db, "cashier1", model.RoleCashier)
	product := seedStockedProduct(t, db, "cola", 3)

	// no token
	resp, _ := doJSON(t, app, "POST", "/inventory", "", fiber.Map{
		"productId": product.ID.String(), "type": "sale", "quantity": 1,
	})
	assert.Equal(t, 401, resp.StatusCode)

	// missing fields
	resp, body := doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"type": "sale",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, body["error"], "required")

	// malformed product id
	resp, _ = doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"productId": "not-a-uuid", "type": "sale", "quantity": 1,
	})
	assert.Equal(t, 400, resp.StatusCode)

	// unknown product
	resp, _ = doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"productId": "72ff3a3e-6b3e-4c24-9b35-2a0c9f1f8f01", "type": "sale", "quantity": 1,
	})
	assert.Equal(t, 404, resp.StatusCode)

	// oversell
	resp, body = doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"productId": product.ID.String(), "type": "sale", "quantity": 99,
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, body["error"], "insufficient stock")

	// bad type
	resp, _ = doJSON(t, app, "POST", "/inventory", token, fiber.Map{
		"productId": product.ID.String(), "type": "donation", "quantity": 1,
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListTransactionsEndpoint(t *testing.T) {
	app, db := setupInventoryApp(t)
	cashier, cashierToken := seedActor(t, db, "cashier1", model.RoleCashier)
	_, bossToken := seedActor(t, db, "boss", model.RoleSuperAdmin)
	product := seedStockedProduct(t, db, "cola", 100)

	for i := 0; i < 3; i++ {
		entry := &model.StockTransaction{
			ProductID:     product.ID,
			Type:          model.TxSale,
			Quantity:      2,
			PerformedByID: cashier.ID,
		}
		require.NoError(t, db.Create(entry).Error)
	}

	// the cashier sees their own entries with the summary attached
	resp, body := doJSON(t, app, "GET", "/inventory?limit=2", cashierToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	transactions, ok := body["transactions"].([]any)
	require.True(t, ok)
	assert.Len(t, transactions, 2)

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["pages"])

	summary, ok := body["salesSummary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, summary["count"])
	assert.EqualValues(t, 6, summary["totalQuantity"])
	assert.Equal(t, "15.00", summary["totalAmount"])

	// super admin narrows by type and finds nothing restocked
	resp, body = doJSON(t, app, "GET", "/inventory?type=restock", bossToken, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, body["transactions"])

	// malformed filters are rejected
	resp, _ = doJSON(t, app, "GET", "/inventory?productId=junk", cashierToken, nil)
	assert.Equal(t, 400, resp.StatusCode)
	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/inventory?dateFrom=%s", "13-13-2026"), cashierToken, nil)
	assert.Equal(t, 400, resp.StatusCode)
}
