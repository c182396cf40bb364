package repository

import (
	"time"

	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows ledger listings; fields are AND-ed, zero values
// mean "no filter". Dates are inclusive bounds on the entry timestamp.
type TransactionFilter struct {
	ProductID   uuid.UUID
	Type        model.TransactionType
	PerformedBy uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
}

// SalesSummary aggregates the sale entries matching a filter
type SalesSummary struct {
	Count         int64           `json:"count"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// StockMovementData feeds the per-day movement chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// InventoryStats is the catalog overview for reporting
type InventoryStats struct {
	TotalProducts   int64           `json:"total_products"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	TotalValuation  decimal.Decimal `json:"total_valuation"`
}

type StockTransactionRepository interface {
	Create(tx *gorm.DB, entry *model.StockTransaction) error
	List(filter TransactionFilter, page, limit int) ([]model.StockTransaction, int64, error)
	SalesSummary(filter TransactionFilter) (*SalesSummary, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetInventoryStats() (*InventoryStats, error)
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

// Create appends one immutable ledger entry. It takes the caller's tx so the
// append commits (or rolls back) together with the stock mutation.
func (r *stockTransactionRepo) Create(tx *gorm.DB, entry *model.StockTransaction) error {
	return tx.Create(entry).Error
}

// applyFilter adds the AND-ed filter clauses; columns are table-qualified so
// the same filter works for the plain listing and the product join.
func applyFilter(q *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.ProductID != uuid.Nil {
		q = q.Where("stock_transactions.product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("stock_transactions.type = ?", filter.Type)
	}
	if filter.PerformedBy != uuid.Nil {
		q = q.Where("stock_transactions.performed_by_id = ?", filter.PerformedBy)
	}
	if filter.DateFrom != nil {
		q = q.Where("stock_transactions.created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("stock_transactions.created_at <= ?", filter.DateTo)
	}
	return q
}

func (r *stockTransactionRepo) List(filter TransactionFilter, page, limit int) ([]model.StockTransaction, int64, error) {
	q := applyFilter(r.db.Model(&model.StockTransaction{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.StockTransaction
	err := q.Preload("Product").Preload("PerformedBy").
		Order("stock_transactions.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// SalesSummary runs the same filter with type forced to sale, joined against
// products for price, yielding count / total quantity / total amount.
func (r *stockTransactionRepo) SalesSummary(filter TransactionFilter) (*SalesSummary, error) {
	filter.Type = model.TxSale

	var summary SalesSummary
	q := applyFilter(r.db.Model(&model.StockTransaction{}), filter)
	err := q.
		Joins("JOIN products ON products.id = stock_transactions.product_id").
		Select(`
			COUNT(*) as count,
			COALESCE(SUM(stock_transactions.quantity), 0) as total_quantity,
			COALESCE(SUM(stock_transactions.quantity * products.price), 0) as total_amount
		`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *stockTransactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'restock' OR (type = 'adjustment' AND direction = 'increase') THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'sale' OR (type = 'adjustment' AND direction = 'decrease') THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *stockTransactionRepo) GetInventoryStats() (*InventoryStats, error) {
	var stats InventoryStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("stock_quantity > 0 AND stock_quantity <= reorder_threshold").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("stock_quantity = 0").
		Count(&stats.OutOfStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock_quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
