package repository

import (
	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Search      string
	CategoryID  uuid.UUID
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	StockStatus string
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter, page, limit int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Lookup(code string) (*model.Product, error)
	Suggest(query string, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Exists(tx *gorm.DB, id uuid.UUID) (bool, error)
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) (bool, error)
	StockQuantity(tx *gorm.DB, id uuid.UUID) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter, page, limit int) ([]model.Product, int64, error) {
	q := r.db.Model(&model.Product{})

	if filter.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil {
		q = q.Where("price BETWEEN ? AND ?", filter.MinPrice, filter.MaxPrice)
	}
	switch filter.StockStatus {
	case model.StatusOutOfStock:
		q = q.Where("stock_quantity = 0")
	case model.StatusLowStock:
		q = q.Where("stock_quantity > 0 AND stock_quantity <= reorder_threshold")
	case model.StatusInStock:
		q = q.Where("stock_quantity > reorder_threshold")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := q.Preload("Category").
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

// Lookup resolves a scanned or typed code against any identifying value
func (r *productRepo) Lookup(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").
		Where("code = ? OR sku = ? OR barcode_value = ? OR qr_value = ? OR name = ?",
			code, code, code, code, code).
		First(&product).Error
	return &product, err
}

func (r *productRepo) Suggest(query string, limit int) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR code LIKE ? OR sku LIKE ? OR barcode_value LIKE ?",
			pattern, pattern, pattern, pattern).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete removes the product row for good; there are no tombstones
func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Exists(tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AdjustStock applies a signed delta with the non-negative guard inside the
// UPDATE itself, so concurrent sales cannot race the quantity below zero.
// Returns false when the guard (or the product's existence) rejected it.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) StockQuantity(tx *gorm.DB, id uuid.UUID) (int, error) {
	var qty int
	err := tx.Model(&model.Product{}).Where("id = ?", id).
		Select("stock_quantity").Scan(&qty).Error
	return qty, err
}
