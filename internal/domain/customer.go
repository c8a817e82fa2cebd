package domain

import "time"

// CustomerProfile is a row in the hosted backend's profiles table. Guest
// checkouts have no profile; their aggregates are derived from orders alone.
type CustomerProfile struct {
	ID        string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	Email     string    `gorm:"type:varchar(200)" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (CustomerProfile) TableName() string { return "profiles" }

// CustomerSummary is computed on read, never stored.
type CustomerSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone"`
	TotalOrders int       `json:"total_orders"`
	TotalSpent  float64   `json:"total_spent"`
	JoinDate    time.Time `json:"join_date"`
	LastOrder   time.Time `json:"last_order"`
}

// OrderProjection is the lightweight orders read used for aggregation.
type OrderProjection struct {
	ID           int64     `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}
