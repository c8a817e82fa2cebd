package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	// OrderStatusIncomplete marks partially filled checkout forms captured
	// on field blur, kept for lead recovery. Never stock-checked.
	OrderStatusIncomplete OrderStatus = "incomplete"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusIncomplete:
		return true
	}
	return false
}

type Order struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName string `gorm:"type:varchar(100);not null" json:"customer_name"`
	// CustomerID links to a profile when the buyer was signed in; empty for
	// guest checkouts.
	CustomerID    string      `gorm:"type:varchar(50);index" json:"customer_id,omitempty"`
	Phone         string      `gorm:"type:varchar(30);index" json:"phone"`
	Address       string      `gorm:"type:text" json:"address"`
	Note          string      `gorm:"type:text" json:"note,omitempty"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"`
	PaymentMethod string      `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentNumber string      `gorm:"type:varchar(30)" json:"payment_number,omitempty"`
	Status        OrderStatus `gorm:"type:varchar(20);index;default:pending" json:"status"`
	ConsignmentID string      `gorm:"type:varchar(50)" json:"consignment_id,omitempty"`
	TrackingCode  string      `gorm:"type:varchar(50)" json:"tracking_code,omitempty"`
	IsLocal       bool        `gorm:"-" json:"is_local,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"index;not null" json:"order_id"`
	// ProductID is a weak reference: the product may be edited or removed
	// after the order is placed.
	ProductID int64 `gorm:"index" json:"product_id"`
	// ProductName is denormalized so the order survives catalog changes.
	ProductName string `gorm:"type:varchar(200)" json:"product_name"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	// Price is the unit price at order time, not live-linked to the catalog.
	Price float64 `gorm:"not null" json:"price"`
}

type CheckoutItem struct {
	ProductID   int64   `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	Price       float64 `json:"price"`
}

type CheckoutRequest struct {
	CustomerName   string         `json:"customer_name" binding:"required"`
	CustomerID     string         `json:"customer_id"`
	Phone          string         `json:"phone" binding:"required"`
	Address        string         `json:"address" binding:"required"`
	Note           string         `json:"note"`
	Items          []CheckoutItem `json:"items" binding:"required,min=1"`
	TotalAmount    float64        `json:"total_amount"`
	DeliveryCharge float64        `json:"delivery_charge"`
	Discount       float64        `json:"discount"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentNumber  string         `json:"payment_number"`
	Status         OrderStatus    `json:"status"`
}

// DraftCheckoutRequest is the loose shape captured on checkout-form blur.
// Nothing is required: whatever the visitor typed so far is kept.
type DraftCheckoutRequest struct {
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Note         string         `json:"note"`
	Items        []CheckoutItem `json:"items"`
	TotalAmount  float64        `json:"total_amount"`
}

type SubmitResult struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id,omitempty"`
	IsLocal bool   `json:"is_local,omitempty"`
	Error   string `json:"error,omitempty"`
}

type OrderPage struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}
