package service

import (
	"strings"
	"testing"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
	)
}

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Snacks")
	svc := newProductService(db)

	view, err := svc.CreateProduct(&CreateProductRequest{
		Name:             "Potato Chips",
		CategoryID:       category.ID,
		CostPrice:        decimal.RequireFromString("1.20"),
		Price:            decimal.RequireFromString("2.00"),
		InitialQuantity:  30,
		ReorderThreshold: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, view.StockQuantity)
	assert.Equal(t, 30, view.InitialQuantity)
	assert.Len(t, view.Code, 6)
	assert.Len(t, view.BarcodeValue, 13)
	assert.True(t, strings.HasPrefix(view.SKU, "POTATO-CHIPS-"))
	assert.Equal(t, view.SKU, view.QRValue)
	assert.Equal(t, model.StatusInStock, view.Status)
	assert.True(t, view.Profit.Equal(decimal.RequireFromString("0.80")))
}

func TestCreateProduct_Validation(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Snacks")
	svc := newProductService(db)

	_, err := svc.CreateProduct(&CreateProductRequest{
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("2.00"),
	})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateProduct(&CreateProductRequest{
		Name:       "Chips",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = svc.CreateProduct(&CreateProductRequest{
		Name:       "Chips",
		CategoryID: uuid.New(),
		Price:      decimal.RequireFromString("2.00"),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateProduct_KeepsSuppliedBarcode(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Snacks")
	svc := newProductService(db)

	view, err := svc.CreateProduct(&CreateProductRequest{
		Name:         "Scanned Item",
		CategoryID:   category.ID,
		Price:        decimal.RequireFromString("5.00"),
		BarcodeValue: "4006381333931",
	})
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", view.BarcodeValue)
}

func TestGetProduct_StatusDerivation(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Snacks")
	svc := newProductService(db)

	cases := []struct {
		name      string
		stock     int
		threshold int
		want      string
	}{
		{"empty", 0, 5, model.StatusOutOfStock},
		{"at threshold", 5, 5, model.StatusLowStock},
		{"below threshold", 1, 5, model.StatusLowStock},
		{"healthy", 10, 5, model.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := seedProduct(t, db, category.ID, "p-"+tc.name, tc.stock, tc.threshold, "1.00")
			view, err := svc.GetProduct(p.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, view.Status)
		})
	}
}

func TestGetProducts_Filters(t *testing.T) {
	db := newTestDB(t)
	drinks := seedCategory(t, db, "Drinks")
	snacks := seedCategory(t, db, "Snacks")
	svc := newProductService(db)

	seedProduct(t, db, drinks.ID, "Cola Zero", 0, 5, "3.00")
	seedProduct(t, db, drinks.ID, "Orange Juice", 3, 5, "4.50")
	seedProduct(t, db, snacks.ID, "Pretzels", 40, 5, "2.00")

	// case-insensitive name search
	list, err := svc.GetProducts(repository.ProductFilter{Search: "cola"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Cola Zero", list.Products[0].Name)

	// category filter
	list, err = svc.GetProducts(repository.ProductFilter{CategoryID: drinks.ID}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)

	// derived status filter
	list, err = svc.GetProducts(repository.ProductFilter{StockStatus: model.StatusLowStock}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Orange Juice", list.Products[0].Name)

	list, err = svc.GetProducts(repository.ProductFilter{StockStatus: model.StatusOutOfStock}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Cola Zero", list.Products[0].Name)

	// price range
	min := decimal.RequireFromString("2.50")
	max := decimal.RequireFromString("4.00")
	list, err = svc.GetProducts(repository.ProductFilter{MinPrice: &min, MaxPrice: &max}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Cola Zero", list.Products[0].Name)
}

func TestLookupAndSuggest(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Drinks")
	svc := newProductService(db)

	p := seedProduct(t, db, category.ID, "sparkling water", 10, 2, "1.75")

	view, err := svc.Lookup(p.SKU)
	require.NoError(t, err)
	assert.Equal(t, p.ID, view.ID)

	view, err = svc.Lookup(p.BarcodeValue)
	require.NoError(t, err)
	assert.Equal(t, p.ID, view.ID)

	_, err = svc.Lookup("no-such-code")
	assert.ErrorIs(t, err, ErrProductNotFound)

	views, err := svc.Suggest("spark")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, p.ID, views[0].ID)
}

func TestUpdateProduct_StockUntouched(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Drinks")
	svc := newProductService(db)

	p := seedProduct(t, db, category.ID, "cola", 20, 5, "3.50")

	newPrice := decimal.RequireFromString("3.99")
	threshold := 8
	view, err := svc.UpdateProduct(p.ID, &UpdateProductRequest{
		Name:             "Cola Classic",
		Price:            &newPrice,
		ReorderThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cola Classic", view.Name)
	assert.True(t, view.Price.Equal(newPrice))
	assert.Equal(t, 8, view.ReorderThreshold)
	assert.Equal(t, 20, view.StockQuantity)

	badPrice := decimal.RequireFromString("-0.01")
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{Price: &badPrice})
	assert.ErrorIs(t, err, ErrNegativePrice)

	bogus := uuid.New()
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{CategoryID: &bogus})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, "Drinks")
	svc := newProductService(db)

	p := seedProduct(t, db, category.ID, "cola", 20, 5, "3.50")

	require.NoError(t, svc.DeleteProduct(p.ID))
	_, err := svc.GetProduct(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(uuid.New()), ErrProductNotFound)
}
