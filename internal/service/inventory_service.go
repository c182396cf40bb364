package service

import (
	"errors"
	"math"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrInsufficientStock      = errors.New("insufficient stock to complete sale")
	ErrInvalidTransactionType = errors.New("type must be one of restock, sale, adjustment")
	ErrInvalidQuantity        = errors.New("quantity must be a positive number")
	ErrInvalidDirection       = errors.New("direction must be increase or decrease")
)

// Actor is the authenticated identity performing an operation, resolved by
// the auth middleware and treated as trusted input here.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type RecordTransactionRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reference string    `json:"reference"`
	// Direction applies to adjustments only; restock and sale have their
	// direction fixed by type. Defaults to decrease (a write-down).
	Direction string `json:"direction"`
}

type RecordTransactionResult struct {
	TransactionID uuid.UUID `json:"transactionId"`
	ProductID     uuid.UUID `json:"productId"`
	StockQuantity int       `json:"stockQuantity"`
}

type ListTransactionsQuery struct {
	Page        int
	Limit       int
	ProductID   uuid.UUID
	Type        string
	DateFrom    *time.Time
	DateTo      *time.Time
	PerformedBy uuid.UUID
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// SalesSummaryView carries the aggregate with the amount fixed to 2 decimals
type SalesSummaryView struct {
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"totalQuantity"`
	TotalAmount   string `json:"totalAmount"`
}

type TransactionList struct {
	Transactions []model.StockTransaction `json:"transactions"`
	Pagination   Pagination               `json:"pagination"`
	SalesSummary SalesSummaryView         `json:"salesSummary"`
}

type InventoryService interface {
	RecordTransaction(req *RecordTransactionRequest, actor Actor) (*RecordTransactionResult, error)
	ListTransactions(query ListTransactionsQuery, actor Actor) (*TransactionList, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	ledgerRepo  repository.StockTransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, lRepo repository.StockTransactionRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		ledgerRepo:  lRepo,
		db:          db,
		wsHub:       hub,
	}
}

// effectDelta resolves the signed stock change for a request. The resolved
// adjustment direction is returned so it can be persisted on the entry.
func effectDelta(req *RecordTransactionRequest) (delta int, direction string, err error) {
	switch model.TransactionType(req.Type) {
	case model.TxRestock:
		return req.Quantity, "", nil
	case model.TxSale:
		return -req.Quantity, "", nil
	case model.TxAdjustment:
		switch model.AdjustmentDirection(req.Direction) {
		case model.DirectionIncrease:
			return req.Quantity, string(model.DirectionIncrease), nil
		case model.DirectionDecrease, "":
			return -req.Quantity, string(model.DirectionDecrease), nil
		default:
			return 0, "", ErrInvalidDirection
		}
	}
	return 0, "", ErrInvalidTransactionType
}

func (s *inventoryService) RecordTransaction(req *RecordTransactionRequest, actor Actor) (*RecordTransactionResult, error) {
	if req.ProductID == uuid.Nil {
		return nil, ErrProductNotFound
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	delta, direction, err := effectDelta(req)
	if err != nil {
		return nil, err
	}

	// Sale pre-check for a friendly early rejection. The authoritative guard
	// is the conditional UPDATE below; this read is advisory only.
	if model.TransactionType(req.Type) == model.TxSale {
		product, err := s.productRepo.FindByID(req.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		if product.StockQuantity < req.Quantity {
			return nil, ErrInsufficientStock
		}
	}

	var (
		entry   model.StockTransaction
		product *model.Product
		newQty  int
	)

	// Mutation and ledger append commit as one atomic unit, or neither does.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.productRepo.AdjustStock(tx, req.ProductID, delta)
		if err != nil {
			return err
		}
		if !ok {
			exists, err := s.productRepo.Exists(tx, req.ProductID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrProductNotFound
			}
			return ErrInsufficientStock
		}

		entry = model.StockTransaction{
			ProductID:     req.ProductID,
			Type:          model.TransactionType(req.Type),
			Quantity:      req.Quantity, // absolute magnitude, always positive
			Direction:     direction,
			Reference:     req.Reference,
			PerformedByID: actor.ID,
		}
		if err := s.ledgerRepo.Create(tx, &entry); err != nil {
			return err
		}

		newQty, err = s.productRepo.StockQuantity(tx, req.ProductID)
		if err != nil {
			return err
		}

		var p model.Product
		if err := tx.First(&p, "id = ?", req.ProductID).Error; err != nil {
			return err
		}
		product = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStockChange(product, &entry, newQty)

	return &RecordTransactionResult{
		TransactionID: entry.ID,
		ProductID:     req.ProductID,
		StockQuantity: newQty,
	}, nil
}

func (s *inventoryService) broadcastStockChange(product *model.Product, entry *model.StockTransaction, newQty int) {
	if s.wsHub == nil || product == nil {
		return
	}
	s.wsHub.PublishStockUpdate(ws.StockUpdate{
		ProductID:     product.ID.String(),
		SKU:           product.SKU,
		Name:          product.Name,
		Type:          string(entry.Type),
		Quantity:      entry.Quantity,
		StockQuantity: newQty,
	})
	if newQty <= product.ReorderThreshold {
		s.wsHub.PublishLowStockAlert(ws.LowStockAlert{
			ProductID:        product.ID.String(),
			SKU:              product.SKU,
			Name:             product.Name,
			StockQuantity:    newQty,
			ReorderThreshold: product.ReorderThreshold,
		})
	}
}

func (s *inventoryService) ListTransactions(query ListTransactionsQuery, actor Actor) (*TransactionList, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	filter := repository.TransactionFilter{
		ProductID: query.ProductID,
		Type:      model.TransactionType(query.Type),
		DateFrom:  query.DateFrom,
		DateTo:    query.DateTo,
	}

	// Role scoping comes before any other filter: a non-privileged actor can
	// only ever see their own entries, whatever performedBy they supplied.
	if actor.Role != model.RoleSuperAdmin {
		filter.PerformedBy = actor.ID
	} else {
		filter.PerformedBy = query.PerformedBy
	}

	entries, total, err := s.ledgerRepo.List(filter, page, limit)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledgerRepo.SalesSummary(filter)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []model.StockTransaction{}
	}

	return &TransactionList{
		Transactions: entries,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
			Limit: limit,
		},
		SalesSummary: SalesSummaryView{
			Count:         summary.Count,
			TotalQuantity: summary.TotalQuantity,
			TotalAmount:   summary.TotalAmount.StringFixed(2),
		},
	}, nil
}
