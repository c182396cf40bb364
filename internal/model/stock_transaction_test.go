package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionEffect(t *testing.T) {
	assert.Equal(t, 10, (&StockTransaction{Type: TxRestock, Quantity: 10}).Effect())
	assert.Equal(t, -4, (&StockTransaction{Type: TxSale, Quantity: 4}).Effect())
	assert.Equal(t, -3, (&StockTransaction{Type: TxAdjustment, Quantity: 3, Direction: string(DirectionDecrease)}).Effect())
	assert.Equal(t, 3, (&StockTransaction{Type: TxAdjustment, Quantity: 3, Direction: string(DirectionIncrease)}).Effect())
	// adjustments without a recorded direction read as write-downs
	assert.Equal(t, -2, (&StockTransaction{Type: TxAdjustment, Quantity: 2}).Effect())
}
