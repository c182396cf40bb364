package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxRestock    TransactionType = "restock"
	TxSale       TransactionType = "sale"
	TxAdjustment TransactionType = "adjustment"
)

// Direction of an adjustment's effect on stock. Restock and sale have their
// direction fixed by type; adjustments carry it explicitly.
type AdjustmentDirection string

const (
	DirectionIncrease AdjustmentDirection = "increase"
	DirectionDecrease AdjustmentDirection = "decrease"
)

// StockTransaction is an immutable ledger entry. Quantity is always the
// positive magnitude of the change; the signed effect is reconstructed from
// Type (and Direction for adjustments) only in the mutation path.
type StockTransaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Type      TransactionType `gorm:"type:varchar(20);not null;index" json:"type" validate:"required,oneof=restock sale adjustment"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Direction string          `gorm:"type:varchar(10)" json:"direction,omitempty"` // set for adjustments only
	Reference string          `gorm:"type:varchar(255)" json:"reference,omitempty"`

	PerformedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"performed_by_id"`
	PerformedBy   *User     `gorm:"foreignKey:PerformedByID" json:"performed_by,omitempty" validate:"-"`
}

// Effect returns the signed stock change this entry represents.
func (t *StockTransaction) Effect() int {
	switch t.Type {
	case TxRestock:
		return t.Quantity
	case TxSale:
		return -t.Quantity
	case TxAdjustment:
		if t.Direction == string(DirectionIncrease) {
			return t.Quantity
		}
		return -t.Quantity
	}
	return 0
}
