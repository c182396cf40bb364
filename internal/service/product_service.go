package service

import (
	"errors"
	"math"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/codes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("invalid category selected")
	ErrDuplicateProduct = errors.New("duplicate value detected (product code, SKU or barcode)")
	ErrMissingFields    = errors.New("missing required fields")
	ErrNegativePrice    = errors.New("price and cost price must be non-negative")
)

type CreateProductRequest struct {
	Name             string          `json:"name"`
	CategoryID       uuid.UUID       `json:"category_id"`
	Description      string          `json:"description"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	Price            decimal.Decimal `json:"price"`
	InitialQuantity  int             `json:"initial_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	BatchNumber      string          `json:"batch_number"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
	BarcodeValue     string          `json:"barcode_value"` // scanned/typed; generated when empty
	Image            string          `json:"image"`
}

type UpdateProductRequest struct {
	Name             string           `json:"name"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Description      *string          `json:"description"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	Price            *decimal.Decimal `json:"price"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	BatchNumber      *string          `json:"batch_number"`
	ExpiryDate       *time.Time       `json:"expiry_date"`
	BarcodeValue     string           `json:"barcode_value"`
	Image            *string          `json:"image"`
}

// ProductView is a product as surfaced to clients: the stored fields plus
// the derived status and profit, computed at read time.
type ProductView struct {
	model.Product
	Status string          `json:"status"`
	Profit decimal.Decimal `json:"profit"`
}

func toView(p model.Product) ProductView {
	return ProductView{Product: p, Status: p.StockStatus(), Profit: p.Profit()}
}

type ProductList struct {
	Products   []ProductView `json:"products"`
	Pagination Pagination    `json:"pagination"`
}

type ProductService interface {
	CreateProduct(req *CreateProductRequest) (*ProductView, error)
	GetProducts(filter repository.ProductFilter, page, limit int) (*ProductList, error)
	GetProduct(id uuid.UUID) (*ProductView, error)
	Lookup(code string) (*ProductView, error)
	Suggest(query string) ([]ProductView, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*ProductView, error)
	DeleteProduct(id uuid.UUID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository) ProductService {
	return &productService{productRepo: pRepo, categoryRepo: cRepo}
}

func (s *productService) CreateProduct(req *CreateProductRequest) (*ProductView, error) {
	if req.Name == "" || req.CategoryID == uuid.Nil || req.InitialQuantity < 0 || req.ReorderThreshold < 0 {
		return nil, ErrMissingFields
	}
	if req.Price.IsNegative() || req.CostPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	exists, err := s.categoryRepo.Exists(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	sku := codes.GenerateSKU(req.Name)
	if existing, _ := s.productRepo.FindBySKU(sku); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateProduct
	}

	code, err := codes.GenerateProductCode()
	if err != nil {
		return nil, err
	}
	barcode := req.BarcodeValue
	if barcode == "" {
		if barcode, err = codes.GenerateBarcodeValue(); err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		Code:             code,
		SKU:              sku,
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		Description:      req.Description,
		CostPrice:        req.CostPrice,
		Price:            req.Price,
		InitialQuantity:  req.InitialQuantity,
		StockQuantity:    req.InitialQuantity, // running total starts at the initial quantity
		ReorderThreshold: req.ReorderThreshold,
		BatchNumber:      req.BatchNumber,
		ExpiryDate:       req.ExpiryDate,
		BarcodeValue:     barcode,
		QRValue:          sku,
		Image:            req.Image,
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	view := toView(*product)
	return &view, nil
}

func (s *productService) GetProducts(filter repository.ProductFilter, page, limit int) (*ProductList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.productRepo.FindAll(filter, page, limit)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = toView(p)
	}

	return &ProductList{
		Products: views,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
			Limit: limit,
		},
	}, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*ProductView, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	view := toView(*product)
	return &view, nil
}

func (s *productService) Lookup(code string) (*ProductView, error) {
	product, err := s.productRepo.Lookup(code)
	if err != nil {
		return nil, ErrProductNotFound
	}
	view := toView(*product)
	return &view, nil
}

func (s *productService) Suggest(query string) ([]ProductView, error) {
	products, err := s.productRepo.Suggest(query, 10)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = toView(p)
	}
	return views, nil
}

// UpdateProduct edits every field except the stock quantity, which only the
// ledger may touch.
func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*ProductView, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		exists, err := s.categoryRepo.Exists(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = *req.CategoryID
		product.Category = nil
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		product.CostPrice = *req.CostPrice
	}
	if req.ReorderThreshold != nil {
		product.ReorderThreshold = *req.ReorderThreshold
	}
	if req.BatchNumber != nil {
		product.BatchNumber = *req.BatchNumber
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = req.ExpiryDate
	}
	if req.BarcodeValue != "" {
		product.BarcodeValue = req.BarcodeValue
	}
	if req.Image != nil {
		product.Image = *req.Image
	}

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	view := toView(*product)
	return &view, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}
