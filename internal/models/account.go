package models

import "time"

// OrderStatus values as reported by the trading backend.
type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderFilled    OrderStatus = "filled"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a standing buy/sell order. Only the fields the client reads are
// modeled; the rest of the payload is ignored on decode.
type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	Side      string      `json:"side"`
	Quantity  float64     `json:"quantity"`
	PriceAED  float64     `json:"priceAed"`
	CreatedAt time.Time   `json:"createdAt"`
}

// TransactionStatus values as reported by the trading backend.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a settled (or settling) trade.
type Transaction struct {
	ID          string            `json:"id"`
	Status      TransactionStatus `json:"status"`
	Quantity    float64           `json:"quantity"`
	CompletedAt time.Time         `json:"completedAt"`
}

// HoldingsSummary is the server-computed rollup of the user's certificate
// holdings.
type HoldingsSummary struct {
	TotalValue       float64  `json:"totalValue"`
	TotalQuantity    float64  `json:"totalQuantity"`
	UniqueFacilities []string `json:"uniqueFacilities"`
	EnergyTypes      []string `json:"energyTypes"`
}
