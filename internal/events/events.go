package events

import (
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// OrderPlacedEvent is published after any successful remote order placement.
// Local-ledger placements are not announced; they never reached the backend.
type OrderPlacedEvent struct {
	EventID     string             `json:"event_id"`
	OrderID     int64              `json:"order_id"`
	Phone       string             `json:"phone"`
	TotalAmount float64            `json:"total_amount"`
	Items       []domain.OrderItem `json:"items"`
	Status      string             `json:"status"`
	// StockChecked is false for fallback inserts, where stock was not
	// decremented. Downstream inventory consumers reconcile from this.
	StockChecked bool      `json:"stock_checked"`
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id"`
}

type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
