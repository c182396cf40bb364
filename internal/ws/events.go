package ws

// StockUpdate announces a committed ledger transaction.
type StockUpdate struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	StockQuantity int    `json:"stock_quantity"`
}

// LowStockAlert fires when a product falls to or below its reorder threshold.
type LowStockAlert struct {
	ProductID        string `json:"product_id"`
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	StockQuantity    int    `json:"stock_quantity"`
	ReorderThreshold int    `json:"reorder_threshold"`
}

type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (h *Hub) PublishStockUpdate(ev StockUpdate) {
	h.publish(envelope{Type: "stock_update", Data: ev})
}

func (h *Hub) PublishLowStockAlert(ev LowStockAlert) {
	h.publish(envelope{Type: "low_stock_alert", Data: ev})
}
